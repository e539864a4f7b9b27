package query

import (
	"context"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

type GetTutorial struct {
	uowFactory *dbs.UOWFactory
}

func NewGetTutorial(uowFactory *dbs.UOWFactory) *GetTutorial {
	return &GetTutorial{uowFactory: uowFactory}
}

func (q *GetTutorial) Query(ctx context.Context, req dto.GetTutorialRequest) (tutorial *entity.Tutorial, err error) {
	if req.Slug == "" {
		return nil, errs.NotFound("tutorial")
	}
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	tutorials, err := repo.NewTutorialRepo(tx).SearchTutorials(ctx, dto.TutorialFilter{
		Slug:       req.Slug,
		WebsiteID:  req.WebsiteID,
		Visibility: req.Visibility,
	}, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(tutorials) == 0 {
		return nil, errs.NotFound("tutorial")
	}
	tutorial = &tutorials[0]

	tutorial.Comments, err = repo.NewCommentRepo(tx).ListComments(ctx, tutorial.ID)
	if err != nil {
		return nil, err
	}
	return tutorial, nil
}
