package query

import (
	"context"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/paging"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

type ListTutorials struct {
	uowFactory *dbs.UOWFactory
}

func NewListTutorials(uowFactory *dbs.UOWFactory) *ListTutorials {
	return &ListTutorials{uowFactory: uowFactory}
}

// Query returns one page of the website's tutorials, optionally narrowed to a
// keyword or an owner, together with the total number of matches.
func (q *ListTutorials) Query(ctx context.Context, req dto.ListTutorialsRequest) (page *dto.TutorialPage, err error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	filter := dto.TutorialFilter{
		Key:        req.Key,
		UserID:     req.UserID,
		WebsiteID:  req.WebsiteID,
		Visibility: req.Visibility,
	}
	tutorialRepo := repo.NewTutorialRepo(tx)

	total, err := tutorialRepo.CountTutorials(ctx, filter)
	if err != nil {
		return nil, err
	}
	page = &dto.TutorialPage{Total: total}
	if total == 0 {
		return page, nil
	}

	page.Tutorials, err = tutorialRepo.SearchTutorials(ctx, filter, paging.Offset(req.Page, req.Limit), req.Limit)
	if err != nil {
		return nil, err
	}
	return page, nil
}
