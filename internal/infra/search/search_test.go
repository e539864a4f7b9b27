package search_test

import (
	"context"
	"os"
	"testing"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/search"
	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T, maxLimit int) (*search.TutorialIndex, *search.SearchConfig) {
	t.Helper()
	cfg := &search.SearchConfig{
		DataPath:    t.TempDir(),
		Database:    "testdb",
		TutorialDir: "tutorial",
		MaxLimit:    maxLimit,
	}
	return search.NewTutorialIndex(cfg), cfg
}

var corpus = []entity.Tutorial{
	{ID: 1, Name: "Getting started with Golang", Content: "Install the toolchain and write hello world."},
	{ID: 2, Name: "Fiber routing", Content: "Routing HTTP requests in Golang with fiber."},
	{ID: 3, Name: "Postgres basics", Content: "Tables, indexes and transactions."},
	{ID: 4, Name: "Testing in Golang", Content: "Table driven tests and testify."},
}

func TestAvailableRequiresConfiguredLocaleDir(t *testing.T) {
	index, cfg := newIndex(t, 500)

	err := index.Available("en_US")
	require.True(t, errs.IsNotFound(err))

	require.NoError(t, index.Rebuild("en_US", corpus))
	require.NoError(t, index.Available("en_US"))
	require.DirExists(t, cfg.LocaleDir("en_US"))
	require.Contains(t, cfg.LocaleDir("en_US"), "en_us")

	cfg.TutorialDir = ""
	require.True(t, errs.IsNotFound(index.Available("en_US")))
}

func TestSearchAcrossTitleAndContent(t *testing.T) {
	index, _ := newIndex(t, 500)
	require.NoError(t, index.Rebuild("en_US", corpus))
	ctx := context.Background()

	hits, err := index.Search(ctx, "en_US", "golang", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 3, hits.Total)
	require.ElementsMatch(t, []int64{1, 2, 4}, hits.IDs)

	hits, err = index.Search(ctx, "en_US", "transactions", 1, 10)
	require.NoError(t, err)
	require.Equal(t, []int64{3}, hits.IDs)
}

func TestSearchOperators(t *testing.T) {
	index, _ := newIndex(t, 500)
	require.NoError(t, index.Rebuild("en_US", corpus))
	ctx := context.Background()

	hits, err := index.Search(ctx, "en_US", "golang -fiber", 1, 10)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{1, 4}, hits.IDs)

	hits, err = index.Search(ctx, "en_US", "golang NOT testify", 1, 10)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{1, 2}, hits.IDs)

	hits, err = index.Search(ctx, "en_US", "+golang +routing", 1, 10)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, hits.IDs)

	hits, err = index.Search(ctx, "en_US", `"hello world"`, 1, 10)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, hits.IDs)

	hits, err = index.Search(ctx, "en_US", "   ", 1, 10)
	require.NoError(t, err)
	require.Zero(t, hits.Total)
	require.Empty(t, hits.IDs)
}

func TestSearchPagesAndCapsTotal(t *testing.T) {
	index, _ := newIndex(t, 2)
	require.NoError(t, index.Rebuild("en_US", corpus))
	ctx := context.Background()

	hits, err := index.Search(ctx, "en_US", "golang", 1, 1)
	require.NoError(t, err)
	require.Equal(t, 2, hits.Total)
	require.Len(t, hits.IDs, 1)

	second, err := index.Search(ctx, "en_US", "golang", 2, 1)
	require.NoError(t, err)
	require.Len(t, second.IDs, 1)
	require.NotEqual(t, hits.IDs[0], second.IDs[0])

	third, err := index.Search(ctx, "en_US", "golang", 3, 1)
	require.NoError(t, err)
	require.Empty(t, third.IDs)

	far, err := index.Search(ctx, "en_US", "golang", 576460752303423489, 20)
	require.NoError(t, err)
	require.Equal(t, 2, far.Total)
	require.Empty(t, far.IDs)
}

func TestRebuildReplacesExistingIndex(t *testing.T) {
	index, cfg := newIndex(t, 500)
	require.NoError(t, index.Rebuild("es_ES", corpus))
	require.NoError(t, index.Rebuild("es_ES", corpus[:1]))

	hits, err := index.Search(context.Background(), "es_ES", "golang", 1, 10)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, hits.IDs)

	_, err = os.Stat(cfg.LocaleDir("es_ES") + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestAnalyzerFor(t *testing.T) {
	require.Equal(t, "en", search.AnalyzerFor("en_US"))
	require.Equal(t, "es", search.AnalyzerFor("es_ES"))
	require.Equal(t, "fr", search.AnalyzerFor("FR_fr"))
	require.Equal(t, "standard", search.AnalyzerFor("ca_ES"))
}

func TestParseQueryEmpty(t *testing.T) {
	require.Nil(t, search.ParseQuery(""))
	require.Nil(t, search.ParseQuery(" - + "))
	require.NotNil(t, search.ParseQuery("-draft"))
}
