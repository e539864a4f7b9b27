package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/commands"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/config"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/i18n"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/search"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/storage"
	"github.com/Builder-Lawyers/tutorials-backend/pkg/db"
)

// Reindex rebuilds the search index of every served language and exits.
func Reindex() {
	loadDotenv()
	ctx := context.Background()

	serverConfig := config.NewServerConfig()
	siteConfig := config.NewSiteConfig()
	storageConfig := storage.NewStorageConfig()
	languages := i18n.NewLanguages(siteConfig.Languages)

	pool := connect(ctx, serverConfig.Migrate)
	defer pool.Close()

	var store interfaces.IndexStore
	if storageConfig.Enabled() {
		store = newStorage(ctx, storageConfig)
	}
	index := search.NewTutorialIndex(search.NewSearchConfig())

	reindex := commands.NewReindex(db.NewUoWFactory(pool), index, languages.Locales(), store, storageConfig.Prefix)
	if err := reindex.Execute(ctx); err != nil {
		slog.Error("reindex failed", "err", err)
		pool.Close()
		os.Exit(1)
	}
}
