package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Builder-Lawyers/tutorials-backend/pkg/env"
)

type SiteConfig struct {
	WebsiteID     int64
	Title         string
	BaseURL       string
	Languages     []string
	TutorialLimit int
	MaxLimit      int
	Comments      bool
}

func NewSiteConfig() *SiteConfig {
	cfg := &SiteConfig{
		WebsiteID:     int64(env.GetEnvInt("SITE_WEBSITE_ID", 1)),
		Title:         env.GetEnv("SITE_TITLE", "Tutorials"),
		BaseURL:       strings.TrimSuffix(env.GetEnv("SITE_BASE_URL", ""), "/"),
		Languages:     env.GetEnvList("SITE_LANGUAGES", []string{"en"}),
		TutorialLimit: env.GetEnvInt("TUTORIAL_LIMIT", 20),
		MaxLimit:      env.GetEnvInt("TUTORIAL_MAX_LIMIT", 100),
		Comments:      env.GetEnvBool("TUTORIAL_COMMENTS", true),
	}
	if cfg.TutorialLimit < 1 {
		slog.Warn("invalid TUTORIAL_LIMIT, using 20", "config", cfg.TutorialLimit)
		cfg.TutorialLimit = 20
	}
	return cfg
}

type ServerConfig struct {
	Addr        string
	Migrate     bool
	SessionTTL  time.Duration
	IdleTimeout time.Duration
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:        env.GetEnv("HTTP_ADDR", ":8080"),
		Migrate:     env.GetEnvBool("DB_MIGRATE", false),
		SessionTTL:  time.Duration(env.GetEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		IdleTimeout: 5 * time.Second,
	}
}
