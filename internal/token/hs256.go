package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-authgate/authbridge/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates access tokens signed with the backend's shared JWT secret
type HS256Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewHS256Verifier creates a verifier. Empty issuer or audience skip that check.
func NewHS256Verifier(secret, issuer, audience string) *HS256Verifier {
	return &HS256Verifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// Verify checks signature, expiry, issuer and audience
func (v *HS256Verifier) Verify(_ context.Context, tokenString string) (*core.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims.toCore()
}

var _ core.TokenVerifier = (*HS256Verifier)(nil)
