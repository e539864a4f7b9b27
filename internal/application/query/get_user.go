package query

import (
	"context"

	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

type GetUser struct {
	uowFactory *dbs.UOWFactory
}

func NewGetUser(uowFactory *dbs.UOWFactory) *GetUser {
	return &GetUser{uowFactory: uowFactory}
}

func (q *GetUser) Query(ctx context.Context, id int64) (user *entity.User, err error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	return repo.NewUserRepo(tx).GetUserByID(ctx, id)
}
