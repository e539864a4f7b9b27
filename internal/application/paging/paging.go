// Package paging turns page/limit query arguments into offsets and builds the
// pagination block shown under tutorial listings.
package paging

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const displayMsg = "Displaying <b>{start} - {end}</b> of <b>{total}</b>"

// MaxPage is the largest page number accepted from a query string.
const MaxPage = math.MaxInt32

// ParsePage returns the 1-based page number, falling back to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 || page > MaxPage {
		return 1
	}
	return page
}

// ParseLimit resolves the page size for a request. remember reports whether the
// value came from the query and should be stored in the session.
func ParseLimit(raw string, remembered, def, max int) (limit int, remember bool) {
	if raw == "" {
		if remembered > 0 {
			return clamp(remembered, max), false
		}
		return def, false
	}
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit < 1 {
		return def, false
	}
	return clamp(limit, max), true
}

func clamp(limit, max int) int {
	if max > 0 && limit > max {
		return max
	}
	return limit
}

// Offset returns the number of rows before page. It saturates at math.MaxInt
// instead of overflowing, which yields an empty page.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	Start      int
	End        int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	Pages      []PageLink
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// New builds the pagination for a result set. baseURL is the listing URL and
// query carries any arguments that must survive page changes (q, limit).
func New(page, perPage, total int, baseURL string, query url.Values) *Pagination {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	p := &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if off := Offset(page, perPage); off < total {
		p.Start = off + 1
		p.End = off + min(perPage, total-off)
	}
	if p.HasPrev {
		p.PrevURL = pageURL(baseURL, query, page-1)
	}
	if p.HasNext {
		p.NextURL = pageURL(baseURL, query, page+1)
	}
	for n := max(1, page-4); n <= min(totalPages, page+4); n++ {
		p.Pages = append(p.Pages, PageLink{Number: n, URL: pageURL(baseURL, query, n), Current: n == page})
	}
	return p
}

// Info renders the "Displaying x - y of z" line.
func (p *Pagination) Info() template.HTML {
	r := strings.NewReplacer(
		"{start}", strconv.Itoa(p.Start),
		"{end}", strconv.Itoa(p.End),
		"{total}", strconv.Itoa(p.Total),
	)
	return template.HTML(r.Replace(displayMsg))
}

func pageURL(baseURL string, query url.Values, page int) string {
	values := url.Values{}
	for k, v := range query {
		if k == "page" {
			continue
		}
		values[k] = v
	}
	values.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s?%s", baseURL, values.Encode())
}
