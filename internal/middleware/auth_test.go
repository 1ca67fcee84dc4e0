package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier map[string]*core.TokenClaims

func (s stubVerifier) Verify(_ context.Context, token string) (*core.TokenClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

type stubResolver map[string]*models.User

func (s stubResolver) GetUserFromToken(_ context.Context, token string) (*models.User, bool) {
	user, ok := s[token]
	return user, ok
}

func serveGuarded(guard gin.HandlerFunc, authorization string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(guard)
	r.GET("/private", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+"|"+c.GetString(ContextUserEmail))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireBearer_LocalVerifier(t *testing.T) {
	verifier := stubVerifier{"good": {Subject: "u1", Email: "ann@x.com"}}
	// the resolver must not be consulted when a verifier is set
	guard := RequireBearer(verifier, stubResolver{"bad": {ID: "x"}})

	w := serveGuarded(guard, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1|ann@x.com", w.Body.String())

	w = serveGuarded(guard, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireBearer_BackendResolver(t *testing.T) {
	guard := RequireBearer(nil, stubResolver{"good": {ID: "u2", Email: "bob@x.com"}})

	w := serveGuarded(guard, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u2|bob@x.com", w.Body.String())

	w = serveGuarded(guard, "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireBearer_MissingToken(t *testing.T) {
	guard := RequireBearer(nil, stubResolver{})

	for _, header := range []string{"", "Token abc", "Bearer "} {
		w := serveGuarded(guard, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), "Bearer token required")
		assert.Equal(t, `Bearer realm="api"`, w.Header().Get("WWW-Authenticate"))
	}
}
