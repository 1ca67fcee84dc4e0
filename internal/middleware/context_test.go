package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, util.GetRequestIDFromContext(c))
	})

	t.Run("propagates caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(util.RequestIDHeader, "req-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Body.String())
		assert.Equal(t, "req-123", w.Header().Get(util.RequestIDHeader))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get(util.RequestIDHeader))
	})
}

func TestSessionScope_PerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionScope())

	var seen []*models.SessionScope
	r.GET("/", func(c *gin.Context) {
		scope := models.SessionScopeFromContext(c.Request.Context())
		require.NotNil(t, scope)
		assert.Nil(t, scope.Session(), "scope must start empty")
		scope.Set(&models.Session{AccessToken: "t", User: &models.User{ID: "u"}})
		seen = append(seen, scope)
		c.Status(http.StatusNoContent)
	})

	for range 2 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
}
