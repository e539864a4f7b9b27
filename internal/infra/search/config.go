package search

import (
	"path/filepath"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/pkg/env"
)

type SearchConfig struct {
	DataPath    string
	Database    string
	TutorialDir string
	MaxLimit    int
}

func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		DataPath:    env.GetEnv("SEARCH_DATA_PATH", "./data"),
		Database:    env.GetEnv("DB_NAME", "tutorials"),
		TutorialDir: env.GetEnv("SEARCH_TUTORIAL_DIR", "tutorial"),
		MaxLimit:    env.GetEnvInt("SEARCH_MAX_LIMIT", 500),
	}
}

// Root is the directory holding one index per locale.
func (c *SearchConfig) Root() string {
	return filepath.Join(c.DataPath, c.Database, "search", c.TutorialDir)
}

func (c *SearchConfig) LocaleDir(locale string) string {
	return filepath.Join(c.Root(), strings.ToLower(locale))
}
