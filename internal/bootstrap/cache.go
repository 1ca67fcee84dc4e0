package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/go-authgate/authbridge/internal/cache"
	"github.com/go-authgate/authbridge/internal/config"
	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"
)

const videoCacheKeyPrefix = "authbridge:videos:"

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) metrics.Recorder {
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return prometheusMetrics
}

// initializeVideoCache initializes the video metadata cache based on configuration.
// Returns a nil cache when caching is disabled.
func initializeVideoCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[models.VideoInfo], func() error, error) {
	// Create timeout context for cache initialization
	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	switch cfg.VideoCacheType {
	case config.VideoCacheTypeNone:
		log.Println("Video cache: disabled")
		return nil, nil, nil

	case config.VideoCacheTypeRedisAside:
		c, err := cache.NewRueidisAsideCache[models.VideoInfo](
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			videoCacheKeyPrefix,
			cfg.VideoCacheClientTTL,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis-aside video cache: %w", err)
		}
		if err := c.Health(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("redis-aside video cache unreachable: %w", err)
		}
		log.Printf(
			"Video cache: redis-aside (addr=%s, db=%d, ttl=%s, client_ttl=%s)",
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.VideoCacheTTL,
			cfg.VideoCacheClientTTL,
		)
		return c, c.Close, nil

	case config.VideoCacheTypeRedis:
		c, err := cache.NewRueidisCache[models.VideoInfo](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			videoCacheKeyPrefix,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis video cache: %w", err)
		}
		log.Printf(
			"Video cache: redis (addr=%s, db=%d, ttl=%s)",
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.VideoCacheTTL,
		)
		return c, c.Close, nil

	default: // memory
		c := cache.NewMemoryCache[models.VideoInfo](cfg.VideoCacheTTL)
		log.Printf("Video cache: memory (single instance only, ttl=%s)", cfg.VideoCacheTTL)
		return c, c.Close, nil
	}
}
