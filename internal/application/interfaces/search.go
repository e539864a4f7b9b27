package interfaces

import (
	"context"

	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
)

type SearchHits struct {
	IDs   []int64
	Total int
}

// TutorialIndex is the full-text index of tutorials, one per locale.
type TutorialIndex interface {
	Available(locale string) error
	Search(ctx context.Context, locale, query string, page, limit int) (*SearchHits, error)
}

type Mailer interface {
	SendMail(to []string, subject, textBody, htmlBody string) error
}

// IndexBuilder writes the per-locale tutorial indexes.
type IndexBuilder interface {
	Rebuild(locale string, tutorials []entity.Tutorial) error
	LocaleDir(locale string) string
}

// IndexStore distributes built index directories between processes.
type IndexStore interface {
	UploadDir(ctx context.Context, localDir, keyPrefix string) error
	DownloadDir(ctx context.Context, keyPrefix, localDir string) error
}
