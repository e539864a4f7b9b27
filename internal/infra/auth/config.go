package auth

import (
	"github.com/Builder-Lawyers/tutorials-backend/pkg/env"
)

type AuthConfig struct {
	Secret     string
	JWKSURL    string
	CookieName string
}

func NewAuthConfig() *AuthConfig {
	return &AuthConfig{
		Secret:     env.GetEnv("AUTH_JWT_SECRET", ""),
		JWKSURL:    env.GetEnv("AUTH_JWKS_URL", ""),
		CookieName: "auth_token",
	}
}
