package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-authgate/authbridge/internal/version"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes a dependency, returning nil when it is reachable
type HealthCheck func(ctx context.Context) error

// Health reports 200 when every registered dependency is reachable and 503 otherwise
func Health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.Printf("[Health] %s unhealthy: %v", name, err)
				deps[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":       state,
			"version":      version.Version,
			"dependencies": deps,
		})
	}
}
