package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/commands"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/Builder-Lawyers/tutorials-backend/internal/testinfra"
	"github.com/stretchr/testify/require"
)

type fakeBuilder struct {
	built map[string][]entity.Tutorial
	err   error
}

func (f *fakeBuilder) Rebuild(locale string, tutorials []entity.Tutorial) error {
	if f.err != nil {
		return f.err
	}
	f.built[locale] = tutorials
	return nil
}

func (f *fakeBuilder) LocaleDir(locale string) string {
	return filepath.Join("data", locale)
}

type fakeStore struct {
	uploaded   map[string]string
	downloaded map[string]string
}

func (f *fakeStore) UploadDir(_ context.Context, localDir, keyPrefix string) error {
	f.uploaded[keyPrefix] = localDir
	return nil
}

func (f *fakeStore) DownloadDir(_ context.Context, keyPrefix, localDir string) error {
	f.downloaded[keyPrefix] = localDir
	return nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploaded: map[string]string{}, downloaded: map[string]string{}}
}

func Test_Reindex_When_Executed_Then_Active_Tutorials_Indexed_Per_Locale(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	testinfra.InsertTutorial(ctx, testinfra.TutorialFixture{Name: "Live", Slug: "live", Active: true})
	testinfra.InsertTutorial(ctx, testinfra.TutorialFixture{Name: "Staff", Slug: "staff", Active: true, Visibility: "manager"})
	testinfra.InsertTutorial(ctx, testinfra.TutorialFixture{Name: "Draft", Slug: "draft", Active: false})

	builder := &fakeBuilder{built: map[string][]entity.Tutorial{}}
	store := newFakeStore()
	SUT := commands.NewReindex(uowFactory, builder, []string{"en_US", "es_ES"}, store, "search/")

	require.NoError(t, SUT.Execute(ctx))
	require.Len(t, builder.built, 2)
	require.Len(t, builder.built["en_US"], 2)
	require.Equal(t, map[string]string{
		"search/en_us": filepath.Join("data", "en_US"),
		"search/es_es": filepath.Join("data", "es_ES"),
	}, store.uploaded)
}

func Test_Reindex_When_Builder_Fails_Then_Error(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	SUT := commands.NewReindex(uowFactory, &fakeBuilder{err: errors.New("disk full")}, []string{"en_US"}, nil, "")

	require.Error(t, SUT.Execute(ctx))
}

func Test_Sync_Index_When_Executed_Then_Every_Locale_Downloaded(t *testing.T) {
	store := newFakeStore()
	SUT := commands.NewSyncIndex(&fakeBuilder{}, []string{"en_US"}, store, "search")

	require.NoError(t, SUT.Execute(context.Background()))
	require.Equal(t, map[string]string{"search/en_us": filepath.Join("data", "en_US")}, store.downloaded)
}
