package bootstrap

import (
	"fmt"
	"log"

	"github.com/go-authgate/authbridge/internal/config"
	"github.com/go-authgate/authbridge/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateLimitMiddlewares holds rate limiting middlewares for the credential endpoints
type rateLimitMiddlewares struct {
	signIn gin.HandlerFunc
	otp    gin.HandlerFunc
	signUp gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration.
// redisClient is only used with the redis store.
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		log.Println("Rate limiting disabled")
		noOpMiddleware := func(c *gin.Context) { c.Next() }
		return rateLimitMiddlewares{
			signIn: noOpMiddleware,
			otp:    noOpMiddleware,
			signUp: noOpMiddleware,
		}, nil
	}
	return createRateLimiters(cfg, redisClient)
}

// createRateLimiters creates one limiter per endpoint family, each with its own key prefix
func createRateLimiters(
	cfg *config.Config,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	if storeType == middleware.RateLimitStoreRedis {
		log.Printf("Using shared Redis client for rate limiting")
	} else {
		log.Printf("In-memory rate limiting configured (single instance only)")
	}

	createLimiter := func(requestsPerMinute int, endpoint string) (gin.HandlerFunc, error) {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			RedisClient:       redisClient,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			Prefix:            "authbridge:ratelimit:" + endpoint + ":",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter for %s: %w", endpoint, err)
		}
		return limiter, nil
	}

	var (
		limiters rateLimitMiddlewares
		err      error
	)
	if limiters.signIn, err = createLimiter(cfg.SignInRateLimit, "signin"); err != nil {
		return limiters, err
	}
	if limiters.otp, err = createLimiter(cfg.OTPRateLimit, "otp"); err != nil {
		return limiters, err
	}
	if limiters.signUp, err = createLimiter(cfg.SignUpRateLimit, "signup"); err != nil {
		return limiters, err
	}
	return limiters, nil
}
