package config_test

import (
	"testing"
	"time"

	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/config"
	"github.com/stretchr/testify/require"
)

func TestNewSiteConfigDefaults(t *testing.T) {
	cfg := config.NewSiteConfig()
	require.Equal(t, int64(1), cfg.WebsiteID)
	require.Equal(t, 20, cfg.TutorialLimit)
	require.Equal(t, 100, cfg.MaxLimit)
	require.True(t, cfg.Comments)
	require.Equal(t, []string{"en"}, cfg.Languages)
}

func TestNewSiteConfigFromEnv(t *testing.T) {
	t.Setenv("SITE_WEBSITE_ID", "3")
	t.Setenv("SITE_LANGUAGES", "es,en")
	t.Setenv("TUTORIAL_LIMIT", "0")
	t.Setenv("TUTORIAL_COMMENTS", "false")

	cfg := config.NewSiteConfig()
	require.Equal(t, int64(3), cfg.WebsiteID)
	require.Equal(t, []string{"es", "en"}, cfg.Languages)
	require.Equal(t, 20, cfg.TutorialLimit)
	require.False(t, cfg.Comments)
}

func TestNewServerConfig(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "2")
	cfg := config.NewServerConfig()
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
}
