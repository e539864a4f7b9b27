package dto

import (
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
)

// TutorialFilter is the query domain every tutorial lookup goes through.
// Zero values leave a condition out, except Visibility which is mandatory.
type TutorialFilter struct {
	IDs        []int64
	Slug       string
	Key        string
	UserID     int64
	WebsiteID  int64
	Visibility []consts.Visibility
}

type ListTutorialsRequest struct {
	WebsiteID  int64
	Visibility []consts.Visibility
	Key        string
	UserID     int64
	Page       int
	Limit      int
}

type TutorialPage struct {
	Tutorials []entity.Tutorial
	Total     int
}

type GetTutorialRequest struct {
	WebsiteID  int64
	Visibility []consts.Visibility
	Slug       string
}

type SearchTutorialsRequest struct {
	WebsiteID  int64
	Visibility []consts.Visibility
	Locale     string
	Query      string
	Page       int
	Limit      int
}

type PublishCommentRequest struct {
	Website    *entity.Website
	Visibility []consts.Visibility
	TutorialID string
	Comment    string
	UserID     *int64
	Lang       string
}

type PublishCommentResult struct {
	TutorialSlug string
	Flash        Flash
}

type Flash struct {
	Level   consts.FlashLevel `json:"level"`
	Message string            `json:"message"`
}

type Breadcrumb struct {
	URL  string
	Name string
}
