package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/go-authgate/authbridge/internal/config"
	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/handlers"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/middleware"
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/telemetry"
	"github.com/go-authgate/authbridge/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	h handlerSet,
	prometheusMetrics metrics.Recorder,
	verifier core.TokenVerifier,
	rateLimiters rateLimitMiddlewares,
	checks map[string]handlers.HealthCheck,
) *gin.Engine {
	// Setup Gin mode
	setupGinMode(cfg)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(telemetry.Middleware())
	r.Use(middleware.SessionScope())
	setupCORS(r, cfg)

	// Health check endpoint
	r.GET("/health", handlers.Health(checks))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg)

	// Setup all routes
	setupAuthRoutes(r, h, rateLimiters)
	setupVideoRoutes(r, h, verifier)

	// Log server startup info
	logServerStartup(cfg)

	return r
}

// setupCORS enables CORS for the configured origins only
func setupCORS(r *gin.Engine, cfg *config.Config) {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			util.RequestIDHeader,
		},
		ExposeHeaders:    []string{util.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	log.Printf("CORS enabled for origins: %v", cfg.CORSAllowedOrigins)
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAuthRoutes configures the authentication API
func setupAuthRoutes(r *gin.Engine, h handlerSet, rateLimiters rateLimitMiddlewares) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", rateLimiters.signUp, h.auth.SignUp)
		api.POST("/signin", rateLimiters.signIn, h.auth.SignIn)
		api.POST("/signout", h.auth.SignOut)
		api.GET("/me", h.auth.Me)
		api.POST("/signin/magiclink", rateLimiters.otp, h.auth.SendCode)
		api.POST("/verify", rateLimiters.otp, h.auth.Verify)
		api.GET("/providers", handlers.ListProviders)
		api.GET("/providers/:provider", handlers.GetProvider)
		api.GET("/oauth-url", h.auth.OAuthURL)
		api.POST("/oauth-callback", h.auth.OAuthCallback)
		api.POST("/oauth-exchange", h.auth.OAuthExchange)
		api.POST("/refresh", rateLimiters.signIn, h.auth.Refresh)
		api.GET("/validate", h.auth.Validate)
	}
}

// setupVideoRoutes configures the video proxy, guarded by bearer authentication
func setupVideoRoutes(r *gin.Engine, h handlerSet, verifier core.TokenVerifier) {
	videos := r.Group("/api/videos")
	videos.Use(middleware.RequireBearer(verifier, h.authService))
	{
		videos.GET("", h.video.List)
		videos.GET("/config-check", h.video.ConfigCheck)
		videos.GET("/:id", h.video.Get)
		videos.POST("/otp", h.video.GenerateOTP)
		videos.PUT("/upload-credentials", h.video.UploadCredentials)
		videos.PUT("/:id", h.video.Update)
		videos.DELETE("/:id", h.video.Delete)
	}
}

// healthChecks collects the dependencies reported by /health
func healthChecks(
	videoCache core.Cache[models.VideoInfo],
	redisClient *redis.Client,
) map[string]handlers.HealthCheck {
	checks := make(map[string]handlers.HealthCheck)
	if videoCache != nil {
		checks["video_cache"] = videoCache.Health
	}
	if redisClient != nil {
		checks["rate_limit_redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return checks
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs where the API is served
func logServerStartup(cfg *config.Config) {
	log.Printf("AuthBridge server starting on %s", cfg.ServerAddr)
	log.Printf("Auth API: %s/api/auth", cfg.BaseURL)
	log.Printf("Video API: %s/api/videos", cfg.BaseURL)
}
