package core

import (
	"context"
	"time"
)

// TokenClaims is the subset of access token claims the service relies on
type TokenClaims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// TokenVerifier checks a bearer token locally, without calling the identity backend
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}
