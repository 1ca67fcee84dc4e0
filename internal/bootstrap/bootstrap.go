package bootstrap

import (
	"context"
	"net/http"

	"github.com/go-authgate/authbridge/internal/auth"
	"github.com/go-authgate/authbridge/internal/config"
	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/services"
	"github.com/go-authgate/authbridge/internal/video"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	MetricsRecorder      metrics.Recorder
	TracingShutdown      func(context.Context) error
	VideoCache           core.Cache[models.VideoInfo]
	VideoCacheCloser     func() error
	RateLimitRedisClient *redis.Client

	// Upstream clients
	IdentityBackend *auth.GoTrueClient
	VideoBackend    *video.Client
	TokenVerifier   core.TokenVerifier

	// Services
	AuthService  *services.AuthService
	VideoService *services.VideoService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(ctx context.Context, cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(ctx); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up tracing, metrics, the video cache, and Redis
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	// Tracing
	app.TracingShutdown, err = initializeTracing(ctx, app.Config)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config)

	// Video cache
	app.VideoCache, app.VideoCacheCloser, err = initializeVideoCache(ctx, app.Config)
	if err != nil {
		return err
	}

	// Redis (for rate limiting)
	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(ctx, app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up upstream clients and services
func (app *Application) initializeBusinessLayer(ctx context.Context) error {
	var err error

	app.IdentityBackend, err = initializeIdentityBackend(app.Config, app.MetricsRecorder)
	if err != nil {
		return err
	}

	app.VideoBackend, err = initializeVideoBackend(app.Config, app.MetricsRecorder)
	if err != nil {
		return err
	}

	app.TokenVerifier, err = initializeTokenVerifier(ctx, app.Config)
	if err != nil {
		return err
	}

	app.AuthService, app.VideoService = initializeServices(
		app.Config,
		app.IdentityBackend,
		app.VideoBackend,
		app.VideoCache,
		app.MetricsRecorder,
	)
	return nil
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	// Handlers
	app.HandlerSet = initializeHandlers(app.AuthService, app.VideoService)

	// Rate limiting
	rateLimiters, err := setupRateLimiting(app.Config, app.RateLimitRedisClient)
	if err != nil {
		return err
	}

	// Router
	app.Router = setupRouter(
		app.Config,
		app.HandlerSet,
		app.MetricsRecorder,
		app.TokenVerifier,
		rateLimiters,
		healthChecks(app.VideoCache, app.RateLimitRedisClient),
	)

	// HTTP Server
	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	// Add jobs
	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Config, app.Server)
	addRedisClientShutdownJob(m, app.Config, app.RateLimitRedisClient)
	addCacheCleanupJob(m, app.Config, app.VideoCacheCloser)
	addTracingShutdownJob(m, app.Config, app.TracingShutdown)

	// Wait for graceful shutdown
	<-m.Done()
}

// closeInfrastructure releases whatever infrastructure was created when startup fails
func (app *Application) closeInfrastructure() {
	if app.VideoCacheCloser != nil {
		_ = app.VideoCacheCloser()
	}
	if app.RateLimitRedisClient != nil {
		_ = app.RateLimitRedisClient.Close()
	}
	if app.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.Config.ServerShutdownTimeout)
		defer cancel()
		_ = app.TracingShutdown(ctx)
	}
}
