package query

import (
	"context"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

type SearchTutorials struct {
	uowFactory *dbs.UOWFactory
	index      interfaces.TutorialIndex
}

func NewSearchTutorials(uowFactory *dbs.UOWFactory, index interfaces.TutorialIndex) *SearchTutorials {
	return &SearchTutorials{uowFactory: uowFactory, index: index}
}

func (q *SearchTutorials) Available(locale string) error {
	return q.index.Available(locale)
}

// Query looks the text up in the locale index and loads the hits that the
// visitor may see. Total is the index count, the page may hold fewer rows
// once hidden or inactive tutorials are filtered out.
func (q *SearchTutorials) Query(ctx context.Context, req dto.SearchTutorialsRequest) (page *dto.TutorialPage, err error) {
	if strings.TrimSpace(req.Query) == "" {
		return &dto.TutorialPage{}, nil
	}
	hits, err := q.index.Search(ctx, req.Locale, req.Query, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	page = &dto.TutorialPage{Total: hits.Total}
	if len(hits.IDs) == 0 {
		return page, nil
	}

	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	page.Tutorials, err = repo.NewTutorialRepo(tx).SearchTutorials(ctx, dto.TutorialFilter{
		IDs:        hits.IDs,
		WebsiteID:  req.WebsiteID,
		Visibility: req.Visibility,
	}, 0, 0)
	if err != nil {
		return nil, err
	}
	return page, nil
}
