package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

type Reindex struct {
	uowFactory *dbs.UOWFactory
	builder    interfaces.IndexBuilder
	locales    []string
	store      interfaces.IndexStore
	prefix     string
}

// NewReindex builds the command. A nil store keeps the indexes local.
func NewReindex(uowFactory *dbs.UOWFactory, builder interfaces.IndexBuilder, locales []string,
	store interfaces.IndexStore, prefix string) *Reindex {
	return &Reindex{uowFactory: uowFactory, builder: builder, locales: locales, store: store, prefix: prefix}
}

func (c *Reindex) Execute(ctx context.Context) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	tutorials, err := repo.NewTutorialRepo(tx).ListActiveTutorials(ctx)
	if err != nil {
		return err
	}

	for _, locale := range c.locales {
		if err = c.builder.Rebuild(locale, tutorials); err != nil {
			return fmt.Errorf("err rebuilding %s index, %v", locale, err)
		}
		if c.store == nil {
			continue
		}
		if err = c.store.UploadDir(ctx, c.builder.LocaleDir(locale), IndexKeyPrefix(c.prefix, locale)); err != nil {
			return err
		}
	}

	slog.Info("reindex finished", "tutorials", len(tutorials), "locales", c.locales)
	return nil
}

type SyncIndex struct {
	builder interfaces.IndexBuilder
	locales []string
	store   interfaces.IndexStore
	prefix  string
}

func NewSyncIndex(builder interfaces.IndexBuilder, locales []string, store interfaces.IndexStore, prefix string) *SyncIndex {
	return &SyncIndex{builder: builder, locales: locales, store: store, prefix: prefix}
}

// Execute pulls every locale index from the store into the local data path.
func (c *SyncIndex) Execute(ctx context.Context) error {
	for _, locale := range c.locales {
		err := c.store.DownloadDir(ctx, IndexKeyPrefix(c.prefix, locale), c.builder.LocaleDir(locale))
		if err != nil {
			return fmt.Errorf("err syncing %s index, %v", locale, err)
		}
	}
	return nil
}

func IndexKeyPrefix(prefix, locale string) string {
	return path.Join(prefix, strings.ToLower(locale))
}
