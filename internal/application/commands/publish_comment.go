package commands

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/events"
	domain "github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

type PublishComment struct {
	uowFactory      *dbs.UOWFactory
	commentsEnabled bool
}

func NewPublishComment(uowFactory *dbs.UOWFactory, commentsEnabled bool) *PublishComment {
	return &PublishComment{uowFactory: uowFactory, commentsEnabled: commentsEnabled}
}

// Execute saves a visitor comment on a tutorial the visitor can see. Rule
// violations come back as a danger flash, only a missing tutorial is an error.
func (c *PublishComment) Execute(ctx context.Context, req dto.PublishCommentRequest) (res *dto.PublishCommentResult, err error) {
	tutorialID, err := strconv.ParseInt(strings.TrimSpace(req.TutorialID), 10, 64)
	if err != nil {
		return nil, errs.NotFoundError{Resource: "tutorial", Err: err}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	tutorials, err := repo.NewTutorialRepo(tx).SearchTutorials(ctx, dto.TutorialFilter{
		IDs:        []int64{tutorialID},
		WebsiteID:  req.Website.ID,
		Visibility: req.Visibility,
	}, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(tutorials) == 0 {
		return nil, errs.NotFound("tutorial")
	}
	tutorial := tutorials[0]
	res = &dto.PublishCommentResult{TutorialSlug: tutorial.Slug}

	author, flash := CheckComment(req.Website, c.commentsEnabled, req.UserID, req.Comment)
	if flash != nil {
		res.Flash = *flash
		return res, nil
	}

	user, err := repo.NewUserRepo(tx).GetUserByID(ctx, author)
	if err != nil {
		if !errs.IsNotFound(err) {
			return nil, err
		}
		slog.Warn("comment author not found", "website", req.Website.ID, "user", author)
		res.Flash = dto.Flash{Level: domain.FlashDanger, Message: consts.MsgAnonymousDisabled}
		return res, nil
	}

	comment := entity.Comment{
		TutorialID:  tutorial.ID,
		UserID:      author,
		Description: req.Comment,
	}
	if err = repo.NewCommentRepo(tx).InsertComment(ctx, &comment); err != nil {
		return nil, err
	}

	err = repo.NewEventRepo(tx).InsertEvent(ctx, events.CommentPublished{
		CommentID:    comment.ID,
		TutorialID:   tutorial.ID,
		TutorialName: tutorial.Name,
		TutorialSlug: tutorial.Slug,
		Lang:         req.Lang,
		UserName:     user.Name,
		Comment:      comment.Description,
		CreatedAt:    comment.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("comment published", "tutorial", tutorial.ID, "comment", comment.ID, "user", author)
	res.Flash = dto.Flash{Level: domain.FlashSuccess, Message: consts.MsgCommentPublished}
	return res, nil
}

// CheckComment applies the website comment rules in order and returns either
// the user to save the comment as, or the flash explaining the refusal.
func CheckComment(website *entity.Website, enabled bool, userID *int64, text string) (int64, *dto.Flash) {
	danger := func(msg string) *dto.Flash {
		return &dto.Flash{Level: domain.FlashDanger, Message: msg}
	}

	if !enabled || !website.TutorialComment {
		return 0, danger(consts.MsgCommentsDisabled)
	}
	if !website.TutorialAnonymous && userID == nil {
		return 0, danger(consts.MsgAnonymousDisabled)
	}
	author, ok := website.CommentAuthor(userID)
	if !ok {
		slog.Warn("anonymous comments enabled without an anonymous user", "website", website.ID)
		return 0, danger(consts.MsgAnonymousDisabled)
	}
	if strings.TrimSpace(text) == "" {
		return 0, danger(consts.MsgCommentEmpty)
	}
	return author, nil
}
