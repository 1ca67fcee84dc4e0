package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns the defaults produced by Load plus the required identity settings
func validConfig(t *testing.T) *Config {
	t.Helper()
	t.Setenv("IDENTITY_API_URL", "https://project.supabase.co/auth/v1")
	t.Setenv("IDENTITY_API_KEY", "anon-key")
	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := validConfig(t)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "apikey", cfg.IdentityAPIAuthHeader)
	assert.Equal(t, 10*time.Second, cfg.IdentityAPITimeout)
	assert.Equal(t, 3, cfg.IdentityAPIMaxRetries)
	assert.Equal(t, OAuthFlowImplicit, cfg.OAuthFlowType)
	assert.Equal(t, TokenVerifyNone, cfg.TokenVerifyMode)
	assert.Equal(t, "authenticated", cfg.IdentityJWTAudience)
	assert.Equal(t, "https://dev.vdocipher.com/api", cfg.VideoAPIURL)
	assert.Equal(t, VideoCacheTypeMemory, cfg.VideoCacheType)
	assert.Equal(t, 5*time.Minute, cfg.VideoCacheTTL)
	assert.Equal(t, RateLimitStoreMemory, cfg.RateLimitStore)
	assert.True(t, cfg.EnableRateLimit)
	assert.Equal(t, 10, cfg.SignInRateLimit)
	assert.Equal(t, 5*time.Second, cfg.RedisConnTimeout)
	assert.Equal(t, 5*time.Second, cfg.ServerShutdownTimeout)
	assert.False(t, cfg.IsProduction)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("REDIRECT_ALLOWED_HOSTS", "app.example.com,*.example.org")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")
	t.Setenv("IDENTITY_API_RETRY_DELAY", "250ms")
	t.Setenv("OAUTH_FLOW_TYPE", "pkce")
	cfg := validConfig(t)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, []string{"app.example.com", "*.example.org"}, cfg.RedirectAllowedHosts)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.IdentityAPIRetryDelay)
	assert.Equal(t, OAuthFlowPKCE, cfg.OAuthFlowType)
}

func TestLoad_MalformedValue(t *testing.T) {
	t.Setenv("IDENTITY_API_TIMEOUT", "ten seconds")
	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:     "missing identity url",
			mutate:   func(c *Config) { c.IdentityAPIURL = "" },
			errorMsg: "invalid IdentityAPIURL",
		},
		{
			name:     "missing identity key",
			mutate:   func(c *Config) { c.IdentityAPIKey = "" },
			errorMsg: "invalid IdentityAPIKey",
		},
		{
			name:     "malformed default redirect",
			mutate:   func(c *Config) { c.OAuthDefaultRedirect = "not a url" },
			errorMsg: "invalid OAuthDefaultRedirect",
		},
		{
			name:     "invalid store - typo",
			mutate:   func(c *Config) { c.RateLimitStore = "reddis" },
			errorMsg: `invalid RATE_LIMIT_STORE value: "reddis"`,
		},
		{
			name:     "invalid store - uppercase",
			mutate:   func(c *Config) { c.RateLimitStore = "MEMORY" },
			errorMsg: `invalid RATE_LIMIT_STORE value: "MEMORY"`,
		},
		{
			name: "redis store without address",
			mutate: func(c *Config) {
				c.RateLimitStore = RateLimitStoreRedis
			},
			errorMsg: "REDIS_ADDR is required",
		},
		{
			name: "redis store disabled rate limit needs no address",
			mutate: func(c *Config) {
				c.RateLimitStore = RateLimitStoreRedis
				c.EnableRateLimit = false
			},
		},
		{
			name: "redis store with address",
			mutate: func(c *Config) {
				c.RateLimitStore = RateLimitStoreRedis
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name:     "invalid video cache",
			mutate:   func(c *Config) { c.VideoCacheType = "memcache" },
			errorMsg: `invalid VIDEO_CACHE_TYPE value: "memcache"`,
		},
		{
			name:     "redis-aside cache without address",
			mutate:   func(c *Config) { c.VideoCacheType = VideoCacheTypeRedisAside },
			errorMsg: "REDIS_ADDR is required",
		},
		{
			name: "zero cache ttl",
			mutate: func(c *Config) {
				c.VideoCacheTTL = 0
			},
			errorMsg: "VIDEO_CACHE_TTL must be positive",
		},
		{
			name: "zero cache ttl with cache disabled",
			mutate: func(c *Config) {
				c.VideoCacheType = VideoCacheTypeNone
				c.VideoCacheTTL = 0
			},
		},
		{
			name:     "invalid flow type",
			mutate:   func(c *Config) { c.OAuthFlowType = "hybrid" },
			errorMsg: `invalid OAUTH_FLOW_TYPE value: "hybrid"`,
		},
		{
			name:     "hs256 without secret",
			mutate:   func(c *Config) { c.TokenVerifyMode = TokenVerifyHS256 },
			errorMsg: "IDENTITY_JWT_SECRET is required",
		},
		{
			name:     "jwks without url",
			mutate:   func(c *Config) { c.TokenVerifyMode = TokenVerifyJWKS },
			errorMsg: "IDENTITY_JWKS_URL is required",
		},
		{
			name:     "unknown verify mode",
			mutate:   func(c *Config) { c.TokenVerifyMode = "rs256" },
			errorMsg: `invalid TOKEN_VERIFY_MODE value: "rs256"`,
		},
		{
			name:     "otel without endpoint",
			mutate:   func(c *Config) { c.OTelEnabled = true },
			errorMsg: "OTEL_ENDPOINT is required",
		},
		{
			name:     "rate limit out of range",
			mutate:   func(c *Config) { c.SignInRateLimit = 0 },
			errorMsg: "invalid SignInRateLimit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestRateLimitStoreConstants(t *testing.T) {
	assert.Equal(t, "memory", RateLimitStoreMemory)
	assert.Equal(t, "redis", RateLimitStoreRedis)
}
