package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var ErrDisabled = errors.New("token verification is not configured")

type Claims struct {
	jwt.RegisteredClaims
	Manager bool `json:"manager"`
}

type Verifier struct {
	keyfunc jwt.Keyfunc
	methods []string
}

// NewVerifier prefers the JWKS endpoint over the shared secret. The JWKS set is
// refreshed in the background until ctx is done.
func NewVerifier(ctx context.Context, cfg *AuthConfig) (*Verifier, error) {
	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
		if err != nil {
			return nil, fmt.Errorf("failed to get JWKS: %v", err)
		}
		return &Verifier{keyfunc: jwks.Keyfunc, methods: []string{"RS256", "RS384", "RS512", "ES256", "ES384", "EdDSA"}}, nil
	case cfg.Secret != "":
		return NewHMACVerifier([]byte(cfg.Secret)), nil
	}
	return &Verifier{}, nil
}

func NewHMACVerifier(secret []byte) *Verifier {
	return &Verifier{
		keyfunc: func(*jwt.Token) (interface{}, error) { return secret, nil },
		methods: []string{"HS256", "HS384", "HS512"},
	}
}

func (v *Verifier) Enabled() bool {
	return v.keyfunc != nil
}

// Verify checks the token signature and expiry and maps its claims to an identity.
func (v *Verifier) Verify(tokenString string) (*entity.Identity, error) {
	if !v.Enabled() {
		return nil, ErrDisabled
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc,
		jwt.WithValidMethods(v.methods), jwt.WithLeeway(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %v", err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token subject %q is not a user id", claims.Subject)
	}
	return &entity.Identity{UserID: &userID, LoggedIn: true, Manager: claims.Manager}, nil
}
