package token

import (
	"time"

	"github.com/go-authgate/authbridge/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

// identityClaims is the access token payload issued by the identity backend
type identityClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *identityClaims) toCore() (*core.TokenClaims, error) {
	if c.Subject == "" {
		return nil, ErrMissingClaims
	}
	claims := &core.TokenClaims{
		Subject: c.Subject,
		Email:   c.Email,
		Role:    c.Role,
	}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return claims, nil
}

// expiryOf converts a unix expiry claim, zero meaning none
func expiryOf(exp int64) time.Time {
	if exp == 0 {
		return time.Time{}
	}
	return time.Unix(exp, 0)
}
