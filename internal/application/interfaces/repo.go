package interfaces

import (
	"context"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/Builder-Lawyers/tutorials-backend/pkg/interfaces"
)

type WebsiteRepo interface {
	GetWebsiteByID(ctx context.Context, id int64) (*entity.Website, error)
}

type UserRepo interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
}

type TutorialRepo interface {
	SearchTutorials(ctx context.Context, filter dto.TutorialFilter, offset, limit int) ([]entity.Tutorial, error)
	CountTutorials(ctx context.Context, filter dto.TutorialFilter) (int, error)
	ListActiveTutorials(ctx context.Context) ([]entity.Tutorial, error)
}

type CommentRepo interface {
	InsertComment(ctx context.Context, comment *entity.Comment) error
	ListComments(ctx context.Context, tutorialID int64) ([]entity.Comment, error)
}

type EventRepo interface {
	InsertEvent(ctx context.Context, event interfaces.Event) error
}

type MailRepo interface {
	InsertMail(ctx context.Context, mail MailRecord) error
}

type MailRecord struct {
	Type       string
	Recipients string
	Subject    string
	Content    string
}
