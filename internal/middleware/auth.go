package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/util"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireBearer
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextToken     = "access_token"
)

// UserResolver resolves a bearer token through the identity backend
type UserResolver interface {
	GetUserFromToken(ctx context.Context, token string) (*models.User, bool)
}

// RequireBearer rejects requests without a valid bearer token. The token is
// checked locally when verifier is set, otherwise through resolver.
func RequireBearer(verifier core.TokenVerifier, resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			abortUnauthorized(c, "Bearer token required")
			return
		}

		if verifier != nil {
			claims, err := verifier.Verify(c.Request.Context(), token)
			if err != nil {
				log.Printf("[Auth] request_id=%s token rejected: %v",
					util.GetRequestIDFromContext(c), err)
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			c.Set(ContextUserID, claims.Subject)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextToken, token)
			c.Next()
			return
		}

		user, ok := resolver.GetUserFromToken(c.Request.Context(), token)
		if !ok {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextToken, token)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}
