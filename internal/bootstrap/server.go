package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-authgate/authbridge/internal/config"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(m *graceful.Manager, cfg *config.Config, srv *http.Server) {
	m.AddShutdownJob(func() error {
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
			return err
		}

		log.Println("Server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, cfg *config.Config, redisClient *redis.Client) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		log.Println("Closing Redis connection...")
		if err := closeWithTimeout(redisClient.Close, cfg.RedisCloseTimeout); err != nil {
			log.Printf("Error closing Redis client: %v", err)
			return err
		}
		log.Println("Redis connection closed")
		return nil
	})
}

// addCacheCleanupJob adds cache cleanup on shutdown
func addCacheCleanupJob(m *graceful.Manager, cfg *config.Config, videoCacheCloser func() error) {
	if videoCacheCloser == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := closeWithTimeout(videoCacheCloser, cfg.CacheCloseTimeout); err != nil {
			log.Printf("Error closing video cache: %v", err)
		} else {
			log.Println("Video cache closed")
		}
		return nil
	})
}

// closeWithTimeout runs closer and gives up waiting after timeout
func closeWithTimeout(closer func() error, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- closer() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("close timed out after %s", timeout)
	}
}

// addTracingShutdownJob flushes pending spans on shutdown
func addTracingShutdownJob(
	m *graceful.Manager,
	cfg *config.Config,
	shutdown func(context.Context) error,
) {
	if shutdown == nil || !cfg.OTelEnabled {
		return
	}

	m.AddShutdownJob(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
			return err
		}
		log.Println("Tracer provider shut down")
		return nil
	})
}
