package application

import (
	"context"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/commands"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/events"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/query"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	shared "github.com/Builder-Lawyers/tutorials-backend/pkg/interfaces"
)

type WebsiteGetter interface {
	Query(ctx context.Context) (*entity.Website, error)
}

type UserGetter interface {
	Query(ctx context.Context, id int64) (*entity.User, error)
}

type TutorialLister interface {
	Query(ctx context.Context, req dto.ListTutorialsRequest) (*dto.TutorialPage, error)
}

type TutorialGetter interface {
	Query(ctx context.Context, req dto.GetTutorialRequest) (*entity.Tutorial, error)
}

type TutorialSearcher interface {
	Available(locale string) error
	Query(ctx context.Context, req dto.SearchTutorialsRequest) (*dto.TutorialPage, error)
}

type CommentPublisher interface {
	Execute(ctx context.Context, req dto.PublishCommentRequest) (*dto.PublishCommentResult, error)
}

type CommentMailSender interface {
	Handle(ctx context.Context, event events.CommentPublished) (shared.UoW, error)
}

type Handlers struct {
	GetWebsite      WebsiteGetter
	GetUser         UserGetter
	ListTutorials   TutorialLister
	GetTutorial     TutorialGetter
	SearchTutorials TutorialSearcher
	PublishComment  CommentPublisher
	SendCommentMail CommentMailSender
}

var (
	_ WebsiteGetter     = (*query.GetWebsite)(nil)
	_ UserGetter        = (*query.GetUser)(nil)
	_ TutorialLister    = (*query.ListTutorials)(nil)
	_ TutorialGetter    = (*query.GetTutorial)(nil)
	_ TutorialSearcher  = (*query.SearchTutorials)(nil)
	_ CommentPublisher  = (*commands.PublishComment)(nil)
	_ CommentMailSender = (*commands.SendCommentMail)(nil)
)
