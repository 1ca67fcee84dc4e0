package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// ExtractBearer returns the token of an "Authorization: Bearer <token>" header
// value. The prefix must match exactly; anything else yields "".
func ExtractBearer(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// BearerToken returns the bearer token of the current request, or ""
func BearerToken(c *gin.Context) string {
	return ExtractBearer(c.GetHeader("Authorization"))
}
