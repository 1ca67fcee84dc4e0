package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Video cache type constants
const (
	VideoCacheTypeNone       = "none"
	VideoCacheTypeMemory     = "memory"
	VideoCacheTypeRedis      = "redis"
	VideoCacheTypeRedisAside = "redis-aside"
)

// OAuth flow type constants
const (
	OAuthFlowImplicit = "implicit"
	OAuthFlowPKCE     = "pkce"
)

// Token verification mode constants
const (
	TokenVerifyNone  = "none"
	TokenVerifyHS256 = "hs256"
	TokenVerifyJWKS  = "jwks"
)

type Config struct {
	// Server settings
	ServerAddr   string `env:"SERVER_ADDR"  envDefault:":8080"`
	BaseURL      string `env:"BASE_URL"     envDefault:"http://localhost:8080" validate:"required,url"`
	Environment  string `env:"ENVIRONMENT"  envDefault:"development"`
	IsProduction bool   `env:"-"`

	// Identity backend (GoTrue)
	IdentityAPIURL                string        `env:"IDENTITY_API_URL"                  validate:"required,url"`
	IdentityAPIKey                string        `env:"IDENTITY_API_KEY"                  validate:"required"`
	IdentityAPIAuthHeader         string        `env:"IDENTITY_API_AUTH_HEADER"          envDefault:"apikey"`
	IdentityAPITimeout            time.Duration `env:"IDENTITY_API_TIMEOUT"              envDefault:"10s"`
	IdentityAPIInsecureSkipVerify bool          `env:"IDENTITY_API_INSECURE_SKIP_VERIFY" envDefault:"false"`
	IdentityAPIMaxRetries         int           `env:"IDENTITY_API_MAX_RETRIES"          envDefault:"3"     validate:"gte=0,lte=10"`
	IdentityAPIRetryDelay         time.Duration `env:"IDENTITY_API_RETRY_DELAY"          envDefault:"1s"`
	IdentityAPIMaxRetryDelay      time.Duration `env:"IDENTITY_API_MAX_RETRY_DELAY"      envDefault:"10s"`

	// OAuth
	OAuthFlowType        string   `env:"OAUTH_FLOW_TYPE"        envDefault:"implicit"`
	OAuthDefaultRedirect string   `env:"OAUTH_DEFAULT_REDIRECT" validate:"omitempty,url"`
	RedirectAllowedHosts []string `env:"REDIRECT_ALLOWED_HOSTS" envSeparator:","`

	// Local bearer token verification
	TokenVerifyMode     string `env:"TOKEN_VERIFY_MODE"     envDefault:"none"`
	IdentityJWTSecret   string `env:"IDENTITY_JWT_SECRET"`
	IdentityJWKSURL     string `env:"IDENTITY_JWKS_URL"     validate:"omitempty,url"`
	IdentityJWTIssuer   string `env:"IDENTITY_JWT_ISSUER"`
	IdentityJWTAudience string `env:"IDENTITY_JWT_AUDIENCE" envDefault:"authenticated"`

	// Video API (VdoCipher)
	VideoAPIURL         string        `env:"VIDEO_API_URL"          envDefault:"https://dev.vdocipher.com/api" validate:"omitempty,url"`
	VideoAPISecret      string        `env:"VIDEO_API_SECRET"`
	VideoAPITimeout     time.Duration `env:"VIDEO_API_TIMEOUT"      envDefault:"30s"`
	VideoAPIMaxRetries  int           `env:"VIDEO_API_MAX_RETRIES"  envDefault:"3"                             validate:"gte=0,lte=10"`
	VideoCacheType      string        `env:"VIDEO_CACHE_TYPE"       envDefault:"memory"`
	VideoCacheTTL       time.Duration `env:"VIDEO_CACHE_TTL"        envDefault:"5m"`
	VideoCacheClientTTL time.Duration `env:"VIDEO_CACHE_CLIENT_TTL" envDefault:"1m"`

	// Redis
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB"            envDefault:"0" validate:"gte=0"`
	RedisConnTimeout  time.Duration `env:"REDIS_CONN_TIMEOUT"  envDefault:"5s"`
	RedisCloseTimeout time.Duration `env:"REDIS_CLOSE_TIMEOUT" envDefault:"5s"`

	// Rate limiting (requests per minute per client IP)
	EnableRateLimit          bool          `env:"ENABLE_RATE_LIMIT"           envDefault:"true"`
	RateLimitStore           string        `env:"RATE_LIMIT_STORE"            envDefault:"memory"`
	RateLimitCleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	SignInRateLimit          int           `env:"SIGNIN_RATE_LIMIT"           envDefault:"10" validate:"gt=0"`
	OTPRateLimit             int           `env:"OTP_RATE_LIMIT"              envDefault:"5"  validate:"gt=0"`
	SignUpRateLimit          int           `env:"SIGNUP_RATE_LIMIT"           envDefault:"5"  validate:"gt=0"`

	// Observability
	MetricsEnabled  bool   `env:"METRICS_ENABLED"   envDefault:"false"`
	MetricsToken    string `env:"METRICS_TOKEN"`
	OTelEnabled     bool   `env:"OTEL_ENABLED"      envDefault:"false"`
	OTelEndpoint    string `env:"OTEL_ENDPOINT"`
	OTelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"authbridge"`

	// HTTP
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Lifecycle timeouts
	CacheInitTimeout      time.Duration `env:"CACHE_INIT_TIMEOUT"      envDefault:"5s"`
	CacheCloseTimeout     time.Duration `env:"CACHE_CLOSE_TIMEOUT"     envDefault:"5s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads configuration from the environment, after loading a .env file if present
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.IsProduction = cfg.Environment == "production"
	return cfg, nil
}

// Validate checks field formats and the combinations of settings that depend on each other
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid %s: failed %q check", fe.Field(), fe.Tag())
		}
		return err
	}

	switch c.RateLimitStore {
	case RateLimitStoreMemory, RateLimitStoreRedis:
	default:
		return fmt.Errorf("invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
			c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis)
	}

	switch c.VideoCacheType {
	case VideoCacheTypeNone, VideoCacheTypeMemory, VideoCacheTypeRedis, VideoCacheTypeRedisAside:
	default:
		return fmt.Errorf("invalid VIDEO_CACHE_TYPE value: %q (must be one of %q, %q, %q, %q)",
			c.VideoCacheType, VideoCacheTypeNone, VideoCacheTypeMemory,
			VideoCacheTypeRedis, VideoCacheTypeRedisAside)
	}
	if c.VideoCacheType != VideoCacheTypeNone && c.VideoCacheTTL <= 0 {
		return fmt.Errorf("VIDEO_CACHE_TTL must be positive, got %s", c.VideoCacheTTL)
	}

	switch c.OAuthFlowType {
	case OAuthFlowImplicit, OAuthFlowPKCE:
	default:
		return fmt.Errorf("invalid OAUTH_FLOW_TYPE value: %q (must be %q or %q)",
			c.OAuthFlowType, OAuthFlowImplicit, OAuthFlowPKCE)
	}

	switch c.TokenVerifyMode {
	case TokenVerifyNone:
	case TokenVerifyHS256:
		if c.IdentityJWTSecret == "" {
			return errors.New("IDENTITY_JWT_SECRET is required when TOKEN_VERIFY_MODE=hs256")
		}
	case TokenVerifyJWKS:
		if c.IdentityJWKSURL == "" {
			return errors.New("IDENTITY_JWKS_URL is required when TOKEN_VERIFY_MODE=jwks")
		}
	default:
		return fmt.Errorf("invalid TOKEN_VERIFY_MODE value: %q (must be %q, %q or %q)",
			c.TokenVerifyMode, TokenVerifyNone, TokenVerifyHS256, TokenVerifyJWKS)
	}

	if c.NeedsRedis() && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required when a redis rate limit store or video cache is configured")
	}

	if c.OTelEnabled && c.OTelEndpoint == "" {
		return errors.New("OTEL_ENDPOINT is required when OTEL_ENABLED=true")
	}

	return nil
}

// NeedsRedis reports whether any component is configured to use redis
func (c *Config) NeedsRedis() bool {
	return c.UsesRedisRateLimit() ||
		c.VideoCacheType == VideoCacheTypeRedis ||
		c.VideoCacheType == VideoCacheTypeRedisAside
}

// UsesRedisRateLimit reports whether rate limiting is enabled with the redis store
func (c *Config) UsesRedisRateLimit() bool {
	return c.EnableRateLimit && c.RateLimitStore == RateLimitStoreRedis
}
