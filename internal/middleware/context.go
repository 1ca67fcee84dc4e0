package middleware

import (
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID reuses the caller's X-Request-ID or generates one, stores it in the
// request context and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(util.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Request = c.Request.WithContext(util.WithRequestID(c.Request.Context(), id))
		c.Header(util.RequestIDHeader, id)
		c.Next()
	}
}

// SessionScope gives every request its own session holder, so a session
// established by one request is never visible to another.
func SessionScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := models.WithSessionScope(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
