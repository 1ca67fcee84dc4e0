package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-authgate/authbridge/internal/core"

	"github.com/coreos/go-oidc/v3/oidc"
)

// JWKSVerifier validates asymmetrically signed access tokens against the
// backend's published key set. Keys are fetched lazily and refreshed by go-oidc
// when an unknown key id is seen.
type JWKSVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewJWKSVerifier creates a verifier backed by the key set at jwksURL.
// httpClient may be nil to use http.DefaultClient.
func NewJWKSVerifier(
	ctx context.Context,
	jwksURL, issuer, audience string,
	httpClient *http.Client,
) *JWKSVerifier {
	if httpClient != nil {
		ctx = oidc.ClientContext(ctx, httpClient)
	}
	return newJWKSVerifier(oidc.NewRemoteKeySet(ctx, jwksURL), issuer, audience)
}

func newJWKSVerifier(keySet oidc.KeySet, issuer, audience string) *JWKSVerifier {
	return &JWKSVerifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{
			ClientID:             audience,
			SkipClientIDCheck:    audience == "",
			SkipIssuerCheck:      issuer == "",
			SupportedSigningAlgs: []string{oidc.RS256, oidc.ES256},
		}),
	}
}

// Verify checks signature, expiry, issuer and audience
func (v *JWKSVerifier) Verify(ctx context.Context, tokenString string) (*core.TokenClaims, error) {
	idToken, err := v.verifier.Verify(ctx, tokenString)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var payload struct {
		Email string `json:"email"`
		Role  string `json:"role"`
		Exp   int64  `json:"exp"`
	}
	if err := idToken.Claims(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if idToken.Subject == "" {
		return nil, ErrMissingClaims
	}

	return &core.TokenClaims{
		Subject:   idToken.Subject,
		Email:     payload.Email,
		Role:      payload.Role,
		ExpiresAt: expiryOf(payload.Exp),
	}, nil
}

var _ core.TokenVerifier = (*JWKSVerifier)(nil)
