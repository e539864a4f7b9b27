package entity

type Website struct {
	ID                      int64
	Name                    string
	TutorialComment         bool
	TutorialAnonymous       bool
	TutorialAnonymousUserID *int64
}

// CommentAuthor picks who a new comment is saved as: the session user, or the
// anonymous placeholder when anonymous comments are enabled.
func (w *Website) CommentAuthor(sessionUser *int64) (int64, bool) {
	if sessionUser != nil {
		return *sessionUser, true
	}
	if w.TutorialAnonymous && w.TutorialAnonymousUserID != nil {
		return *w.TutorialAnonymousUserID, true
	}
	return 0, false
}
