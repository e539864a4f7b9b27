package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/paging"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// pageContext is what every tutorial page resolves before querying content.
type pageContext struct {
	sess     *session.Session
	website  *entity.Website
	identity entity.Identity
	lang     string
	locale   string
	page     int
	limit    int
	flashes  []dto.Flash
}

func (s *Server) language(c *fiber.Ctx) (string, string, error) {
	lang := strings.ToLower(c.Params("lang"))
	locale, ok := s.languages.Locale(lang)
	if !ok {
		return "", "", errs.NotFound("language")
	}
	return lang, locale, nil
}

func (s *Server) loadPage(c *fiber.Ctx) (*pageContext, error) {
	lang, locale, err := s.language(c)
	if err != nil {
		return nil, err
	}
	website, err := s.handlers.GetWebsite.Query(c.UserContext())
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil, fmt.Errorf("err loading session, %v", err)
	}

	p := &pageContext{
		sess:     sess,
		website:  website,
		identity: identityFromSession(sess),
		lang:     lang,
		locale:   locale,
		page:     paging.ParsePage(c.Query("page")),
	}
	var remember bool
	p.limit, remember = paging.ParseLimit(c.Query("limit"), rememberedLimit(sess), s.site.TutorialLimit, s.site.MaxLimit)
	if remember {
		sess.Set(consts.SessionTutorialLimit, p.limit)
	}
	p.flashes = popFlashes(sess)
	if err = sess.Save(); err != nil {
		return nil, fmt.Errorf("err saving session, %v", err)
	}
	return p, nil
}

func (s *Server) bind(p *pageContext, crumbs ...dto.Breadcrumb) fiber.Map {
	return fiber.Map{
		"Lang":        p.lang,
		"SiteTitle":   s.site.Title,
		"Website":     p.website,
		"Flashes":     p.flashes,
		"Breadcrumbs": append([]dto.Breadcrumb{{URL: s.rootURL(p.lang), Name: "Tutorial"}}, crumbs...),
	}
}

func (s *Server) rootURL(lang string) string {
	return "/" + lang + "/tutorial/"
}

// pagination keeps q and an explicit limit on the page links.
func pagination(c *fiber.Ctx, p *pageContext, total int) *paging.Pagination {
	query := url.Values{}
	if q := c.Query("q"); q != "" {
		query.Set("q", q)
	}
	if c.Query("limit") != "" {
		query.Set("limit", strconv.Itoa(p.limit))
	}
	return paging.New(p.page, p.limit, total, c.Path(), query)
}

func (s *Server) listRequest(p *pageContext) dto.ListTutorialsRequest {
	return dto.ListTutorialsRequest{
		WebsiteID:  p.website.ID,
		Visibility: p.identity.Visibility(),
		Page:       p.page,
		Limit:      p.limit,
	}
}

func (s *Server) ListTutorials(c *fiber.Ctx) error {
	p, err := s.loadPage(c)
	if err != nil {
		return err
	}
	result, err := s.handlers.ListTutorials.Query(c.UserContext(), s.listRequest(p))
	if err != nil {
		return err
	}

	data := s.bind(p)
	data["Tutorials"] = result.Tutorials
	data["Pagination"] = pagination(c, p, result.Total)
	return c.Render("tutorials", data, layout)
}

func (s *Server) ListTutorialsByKey(c *fiber.Ctx) error {
	p, err := s.loadPage(c)
	if err != nil {
		return err
	}
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil || strings.TrimSpace(key) == "" {
		return errs.NotFound("key")
	}

	req := s.listRequest(p)
	req.Key = key
	result, err := s.handlers.ListTutorials.Query(c.UserContext(), req)
	if err != nil {
		return err
	}

	data := s.bind(p, dto.Breadcrumb{URL: s.rootURL(p.lang) + "key/" + url.PathEscape(key), Name: key})
	data["Title"] = key
	data["Key"] = key
	data["Tutorials"] = result.Tutorials
	data["Pagination"] = pagination(c, p, result.Total)
	return c.Render("tutorial-key", data, layout)
}

func (s *Server) ListTutorialsByUser(c *fiber.Ctx) error {
	p, err := s.loadPage(c)
	if err != nil {
		return err
	}
	userID, err := strconv.ParseInt(c.Params("user"), 10, 64)
	if err != nil {
		return errs.NotFoundError{Resource: "user", Err: err}
	}
	user, err := s.handlers.GetUser.Query(c.UserContext(), userID)
	if err != nil {
		return err
	}

	req := s.listRequest(p)
	req.UserID = user.ID
	result, err := s.handlers.ListTutorials.Query(c.UserContext(), req)
	if err != nil {
		return err
	}
	if result.Total == 0 {
		return errs.NotFound("tutorials")
	}

	data := s.bind(p, dto.Breadcrumb{URL: s.rootURL(p.lang) + "user/" + strconv.FormatInt(user.ID, 10), Name: user.Name})
	data["Title"] = user.Name
	data["User"] = user
	data["Tutorials"] = result.Tutorials
	data["Pagination"] = pagination(c, p, result.Total)
	return c.Render("tutorial-user", data, layout)
}

func (s *Server) GetTutorial(c *fiber.Ctx) error {
	p, err := s.loadPage(c)
	if err != nil {
		return err
	}
	slug, err := url.PathUnescape(c.Params("slug"))
	if err != nil {
		return errs.NotFound("tutorial")
	}
	tutorial, err := s.handlers.GetTutorial.Query(c.UserContext(), dto.GetTutorialRequest{
		WebsiteID:  p.website.ID,
		Visibility: p.identity.Visibility(),
		Slug:       slug,
	})
	if err != nil {
		return err
	}

	data := s.bind(p, dto.Breadcrumb{URL: s.rootURL(p.lang) + url.PathEscape(tutorial.Slug), Name: tutorial.Name})
	data["Title"] = tutorial.Name
	data["Metadescription"] = tutorial.Metadescription
	data["Metakeywords"] = tutorial.Metakeywords
	data["Tutorial"] = tutorial
	data["CommentsOpen"] = s.site.Comments && p.website.TutorialComment
	return c.Render("tutorial-tutorial", data, layout)
}

func (s *Server) SearchTutorials(c *fiber.Ctx) error {
	p, err := s.loadPage(c)
	if err != nil {
		return err
	}
	if err = s.handlers.SearchTutorials.Available(p.locale); err != nil {
		return err
	}

	data := s.bind(p, dto.Breadcrumb{URL: s.rootURL(p.lang) + "search/", Name: "Search"})
	data["Title"] = "Search"
	q := strings.TrimSpace(c.Query("q"))
	data["Query"] = q
	if q == "" {
		return c.Render("tutorial-search", data, layout)
	}

	result, err := s.handlers.SearchTutorials.Query(c.UserContext(), dto.SearchTutorialsRequest{
		WebsiteID:  p.website.ID,
		Visibility: p.identity.Visibility(),
		Locale:     p.locale,
		Query:      q,
		Page:       p.page,
		Limit:      p.limit,
	})
	if err != nil {
		return err
	}
	data["Tutorials"] = result.Tutorials
	data["Pagination"] = pagination(c, p, result.Total)
	return c.Render("tutorial-search", data, layout)
}

// PublishComment stores the outcome as a flash and always goes back to the tutorial.
func (s *Server) PublishComment(c *fiber.Ctx) error {
	lang, _, err := s.language(c)
	if err != nil {
		return err
	}
	website, err := s.handlers.GetWebsite.Query(c.UserContext())
	if err != nil {
		return err
	}
	sess, err := s.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("err loading session, %v", err)
	}
	identity := identityFromSession(sess)

	res, err := s.handlers.PublishComment.Execute(c.UserContext(), dto.PublishCommentRequest{
		Website:    website,
		Visibility: identity.Visibility(),
		TutorialID: c.FormValue("tutorial"),
		Comment:    c.FormValue("comment"),
		UserID:     identity.UserID,
		Lang:       lang,
	})
	if err != nil {
		return err
	}

	pushFlash(sess, res.Flash)
	if err = sess.Save(); err != nil {
		return fmt.Errorf("err saving session, %v", err)
	}
	return c.Redirect(s.rootURL(lang)+url.PathEscape(res.TutorialSlug), fiber.StatusSeeOther)
}
