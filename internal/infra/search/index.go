package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/paging"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/lang/es"
	"github.com/blevesearch/bleve/v2/analysis/lang/fr"
	"github.com/blevesearch/bleve/v2/mapping"
)

type TutorialIndex struct {
	cfg *SearchConfig
}

var (
	_ interfaces.TutorialIndex = (*TutorialIndex)(nil)
	_ interfaces.IndexBuilder  = (*TutorialIndex)(nil)
)

func NewTutorialIndex(cfg *SearchConfig) *TutorialIndex {
	return &TutorialIndex{cfg: cfg}
}

func (i *TutorialIndex) Available(locale string) error {
	if i.cfg.TutorialDir == "" {
		return errs.NotFoundError{Resource: "search index", Err: errors.New("tutorial index dir is not configured")}
	}
	info, err := os.Stat(i.cfg.LocaleDir(locale))
	if err != nil {
		return errs.NotFoundError{Resource: "search index", Err: err}
	}
	if !info.IsDir() {
		return errs.NotFound("search index")
	}
	return nil
}

// Search runs query against the locale index and returns the hit ids of the
// requested page. Total is capped at MaxLimit and pages past the cap are empty.
func (i *TutorialIndex) Search(ctx context.Context, locale, input string, page, limit int) (*interfaces.SearchHits, error) {
	if err := i.Available(locale); err != nil {
		return nil, err
	}
	q := ParseQuery(input)
	if q == nil {
		return &interfaces.SearchHits{}, nil
	}

	index, err := bleve.OpenUsing(i.cfg.LocaleDir(locale), map[string]interface{}{"read_only": true})
	if err != nil {
		return nil, fmt.Errorf("err opening search index, %v", err)
	}
	defer func() {
		if err := index.Close(); err != nil {
			slog.Error("err closing search index", "locale", locale, "err", err)
		}
	}()

	countReq := bleve.NewSearchRequestOptions(q, 0, 0, false)
	counted, err := index.SearchInContext(ctx, countReq)
	if err != nil {
		return nil, fmt.Errorf("err counting search hits, %v", err)
	}
	total := int(counted.Total)
	if i.cfg.MaxLimit > 0 && total > i.cfg.MaxLimit {
		total = i.cfg.MaxLimit
	}

	hits := &interfaces.SearchHits{Total: total}
	from := paging.Offset(page, limit)
	if limit < 1 || from >= total {
		return hits, nil
	}
	size := min(limit, total-from)

	res, err := index.SearchInContext(ctx, bleve.NewSearchRequestOptions(q, size, from, false))
	if err != nil {
		return nil, fmt.Errorf("err searching index, %v", err)
	}
	for _, hit := range res.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			slog.Warn("skipping search hit with non numeric id", "id", hit.ID)
			continue
		}
		hits.IDs = append(hits.IDs, id)
	}
	return hits, nil
}

// Rebuild writes a fresh index for locale next to the live one and swaps it in.
func (i *TutorialIndex) Rebuild(locale string, tutorials []entity.Tutorial) error {
	dir := i.cfg.LocaleDir(locale)
	tmp := dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return fmt.Errorf("err clearing %s, %v", tmp, err)
	}
	if err := os.MkdirAll(i.cfg.Root(), os.ModePerm); err != nil {
		return fmt.Errorf("err creating index root, %v", err)
	}

	index, err := bleve.New(tmp, NewIndexMapping(locale))
	if err != nil {
		return fmt.Errorf("err creating index %s, %v", tmp, err)
	}
	batch := index.NewBatch()
	for _, t := range tutorials {
		if err = batch.Index(strconv.FormatInt(t.ID, 10), Document(t)); err != nil {
			_ = index.Close()
			return fmt.Errorf("err indexing tutorial %d, %v", t.ID, err)
		}
	}
	if err = index.Batch(batch); err != nil {
		_ = index.Close()
		return fmt.Errorf("err writing index batch, %v", err)
	}
	if err = index.Close(); err != nil {
		return fmt.Errorf("err closing index, %v", err)
	}

	if err = os.RemoveAll(dir); err != nil {
		return fmt.Errorf("err removing old index, %v", err)
	}
	if err = os.Rename(tmp, dir); err != nil {
		return fmt.Errorf("err swapping index, %v", err)
	}
	slog.Info("search index rebuilt", "locale", locale, "docs", len(tutorials), "dir", dir)
	return nil
}

func Document(t entity.Tutorial) map[string]interface{} {
	return map[string]interface{}{
		"title":    t.Name,
		"content":  strings.Join([]string{t.Description, t.Content}, "\n"),
		"slug":     t.Slug,
		"keywords": t.Metakeywords,
	}
}

func NewIndexMapping(locale string) *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = AnalyzerFor(locale)
	return im
}

func AnalyzerFor(locale string) string {
	lang, _, _ := strings.Cut(strings.ToLower(locale), "_")
	switch lang {
	case "en":
		return en.AnalyzerName
	case "es":
		return es.AnalyzerName
	case "fr":
		return fr.AnalyzerName
	}
	return standard.Name
}

func (i *TutorialIndex) LocaleDir(locale string) string {
	return i.cfg.LocaleDir(locale)
}
