package rest

import (
	"encoding/json"
	"log/slog"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func identityFromSession(sess *session.Session) entity.Identity {
	var identity entity.Identity
	if id, ok := sess.Get(consts.SessionUser).(int64); ok {
		identity.UserID = &id
	}
	identity.LoggedIn, _ = sess.Get(consts.SessionLoggedIn).(bool)
	identity.Manager, _ = sess.Get(consts.SessionManager).(bool)
	return identity
}

func storeIdentity(sess *session.Session, identity *entity.Identity) {
	if identity.UserID != nil {
		sess.Set(consts.SessionUser, *identity.UserID)
	}
	sess.Set(consts.SessionLoggedIn, identity.LoggedIn)
	sess.Set(consts.SessionManager, identity.Manager)
}

func rememberedLimit(sess *session.Session) int {
	limit, _ := sess.Get(consts.SessionTutorialLimit).(int)
	return limit
}

func pushFlash(sess *session.Session, flash dto.Flash) {
	flashes := readFlashes(sess)
	flashes = append(flashes, flash)
	raw, err := json.Marshal(flashes)
	if err != nil {
		slog.Error("err encoding flash", "err", err)
		return
	}
	sess.Set(consts.SessionFlash, string(raw))
}

// popFlashes returns the pending flashes and clears them from the session.
func popFlashes(sess *session.Session) []dto.Flash {
	flashes := readFlashes(sess)
	sess.Delete(consts.SessionFlash)
	return flashes
}

func readFlashes(sess *session.Session) []dto.Flash {
	raw, _ := sess.Get(consts.SessionFlash).(string)
	if raw == "" {
		return nil
	}
	var flashes []dto.Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		slog.Warn("dropping unreadable flash", "err", err)
		return nil
	}
	return flashes
}
