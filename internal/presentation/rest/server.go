package rest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/config"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type Server struct {
	handlers  *application.Handlers
	site      *config.SiteConfig
	languages *i18n.Languages
	sessions  *session.Store
}

func NewServer(handlers *application.Handlers, site *config.SiteConfig, languages *i18n.Languages, sessions *session.Store) *Server {
	return &Server{handlers: handlers, site: site, languages: languages, sessions: sessions}
}

func RegisterHandlers(app fiber.Router, s *Server) {
	group := app.Group("/:lang/tutorial")
	group.Get("/", s.ListTutorials)
	group.Get("/search", s.SearchTutorials)
	group.Post("/comment", s.PublishComment)
	group.Get("/key/:key", s.ListTutorialsByKey)
	group.Get("/user/:user", s.ListTutorialsByUser)
	group.Get("/:slug", s.GetTutorial)
}

// ErrorHandler renders the error page, not found lookups become a 404.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong."

	var fe *fiber.Error
	switch {
	case errs.IsNotFound(err):
		code = fiber.StatusNotFound
		message = "The page you are looking for does not exist."
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	}

	c.Status(code)
	renderErr := c.Render("error", fiber.Map{
		"Status":    code,
		"Message":   message,
		"Title":     fmt.Sprintf("%d", code),
		"SiteTitle": s.site.Title,
	}, layout)
	if renderErr != nil {
		slog.Error("err rendering error page", "err", renderErr)
		return c.Status(code).SendString(message)
	}
	return nil
}
