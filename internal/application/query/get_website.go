package query

import (
	"context"

	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

type GetWebsite struct {
	uowFactory *dbs.UOWFactory
	websiteID  int64
}

func NewGetWebsite(uowFactory *dbs.UOWFactory, websiteID int64) *GetWebsite {
	return &GetWebsite{uowFactory: uowFactory, websiteID: websiteID}
}

func (q *GetWebsite) Query(ctx context.Context) (website *entity.Website, err error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	return repo.NewWebsiteRepo(tx).GetWebsiteByID(ctx, q.websiteID)
}
