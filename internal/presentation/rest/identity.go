package rest

import (
	"log/slog"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type TokenVerifier interface {
	Enabled() bool
	Verify(token string) (*entity.Identity, error)
}

// IdentityMiddleware copies a verified identity token into the session.
// Requests with a bad token carry on anonymously.
func IdentityMiddleware(verifier TokenVerifier, sessions *session.Store, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !verifier.Enabled() {
			return c.Next()
		}
		token := c.Cookies(cookieName)
		if bearer, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "); ok && token == "" {
			token = bearer
		}
		if token == "" {
			return c.Next()
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			slog.Warn("ignoring identity token", "path", c.Path(), "err", err)
			return c.Next()
		}

		sess, err := sessions.Get(c)
		if err != nil {
			return err
		}
		storeIdentity(sess, identity)
		if err = sess.Save(); err != nil {
			return err
		}
		return c.Next()
	}
}
