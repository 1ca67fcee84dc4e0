package token

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signRS256(t *testing.T, key *rsa.PrivateKey, claims identityClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func newStaticVerifier(key *rsa.PrivateKey) *JWKSVerifier {
	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
	return newJWKSVerifier(keySet, testIssuer, testAudience)
}

func TestJWKSVerifier_Valid(t *testing.T) {
	key := newRSAKey(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	claims, err := newStaticVerifier(key).
		Verify(context.Background(), signRS256(t, key, validClaims(exp)))

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "authenticated", claims.Role)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestJWKSVerifier_Rejections(t *testing.T) {
	key := newRSAKey(t)
	other := newRSAKey(t)
	future := time.Now().Add(time.Hour)

	wrongIssuer := validClaims(future)
	wrongIssuer.Issuer = "https://elsewhere"

	wrongAudience := validClaims(future)
	wrongAudience.Audience = jwt.ClaimStrings{"anon"}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired", signRS256(t, key, validClaims(time.Now().Add(-time.Hour))), ErrExpiredToken},
		{"unknown key", signRS256(t, other, validClaims(future)), ErrInvalidToken},
		{"wrong issuer", signRS256(t, key, wrongIssuer), ErrInvalidToken},
		{"wrong audience", signRS256(t, key, wrongAudience), ErrInvalidToken},
		{"hs256 token", signHS256(t, testSecret, validClaims(future)), ErrInvalidToken},
		{"garbage", "garbage", ErrInvalidToken},
	}

	v := newStaticVerifier(key)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.Verify(context.Background(), tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewVerifier(t *testing.T) {
	ctx := context.Background()

	v, err := NewVerifier(ctx, Options{Mode: ModeNone})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = NewVerifier(ctx, Options{Mode: ModeHS256, Secret: testSecret})
	require.NoError(t, err)
	assert.IsType(t, &HS256Verifier{}, v)

	// the key set is fetched lazily, so no request is made here
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	v, err = NewVerifier(ctx, Options{Mode: ModeJWKS, JWKSURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)
	assert.IsType(t, &JWKSVerifier{}, v)

	_, err = NewVerifier(ctx, Options{Mode: ModeHS256})
	assert.ErrorIs(t, err, ErrMissingKey)
	_, err = NewVerifier(ctx, Options{Mode: ModeJWKS})
	assert.ErrorIs(t, err, ErrMissingKey)
	_, err = NewVerifier(ctx, Options{Mode: "rot13"})
	assert.ErrorIs(t, err, ErrUnknownMode)
}
