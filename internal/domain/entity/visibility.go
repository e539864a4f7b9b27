package entity

import "github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"

// Identity is what the session knows about the visitor.
type Identity struct {
	UserID   *int64
	LoggedIn bool
	Manager  bool
}

// Visibility lists the tiers the visitor may read, always starting with public.
func (i Identity) Visibility() []consts.Visibility {
	visibility := []consts.Visibility{consts.VisibilityPublic}
	if i.LoggedIn {
		visibility = append(visibility, consts.VisibilityRegister)
	}
	if i.Manager {
		visibility = append(visibility, consts.VisibilityManager)
	}
	return visibility
}
