package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-authgate/authbridge/internal/cache"
	"github.com/go-authgate/authbridge/internal/config"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddr:               ":8080",
		BaseURL:                  "http://localhost:8080",
		Environment:              "development",
		IdentityAPIURL:           "http://127.0.0.1:1/auth/v1",
		IdentityAPIKey:           "anon-key",
		IdentityAPIAuthHeader:    "apikey",
		IdentityAPITimeout:       time.Second,
		IdentityAPIMaxRetries:    0,
		IdentityAPIRetryDelay:    10 * time.Millisecond,
		IdentityAPIMaxRetryDelay: 50 * time.Millisecond,
		OAuthFlowType:            config.OAuthFlowImplicit,
		TokenVerifyMode:          config.TokenVerifyNone,
		IdentityJWTAudience:      "authenticated",
		VideoAPIURL:              "https://dev.vdocipher.com/api",
		VideoAPISecret:           "secret-0123456789",
		VideoAPITimeout:          time.Second,
		VideoCacheType:           config.VideoCacheTypeMemory,
		VideoCacheTTL:            time.Minute,
		EnableRateLimit:          true,
		RateLimitStore:           config.RateLimitStoreMemory,
		RateLimitCleanupInterval: time.Minute,
		SignInRateLimit:          10,
		OTPRateLimit:             5,
		SignUpRateLimit:          5,
		OTelServiceName:          "authbridge",
		CacheInitTimeout:         time.Second,
		CacheCloseTimeout:        time.Second,
		ServerShutdownTimeout:    time.Second,
	}
}

func TestValidateAllConfiguration(t *testing.T) {
	require.NoError(t, validateAllConfiguration(testConfig()))

	cfg := testConfig()
	cfg.RateLimitStore = "disk"
	err := validateAllConfiguration(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "RATE_LIMIT_STORE")
}

func TestConfigurationWarnings(t *testing.T) {
	assert.Empty(t, configurationWarnings(testConfig()))

	cfg := testConfig()
	cfg.IsProduction = true
	cfg.IdentityAPIInsecureSkipVerify = true
	cfg.VideoAPISecret = ""
	cfg.VideoAPIURL = "http://video.internal/api"
	cfg.MetricsEnabled = true

	warnings := strings.Join(configurationWarnings(cfg), "\n")
	assert.Contains(t, warnings, "IDENTITY_API_INSECURE_SKIP_VERIFY")
	assert.Contains(t, warnings, "VIDEO_API_SECRET")
	assert.Contains(t, warnings, "HTTPS")
	assert.Contains(t, warnings, "TOKEN_VERIFY_MODE=none")
	assert.Contains(t, warnings, "METRICS_TOKEN")
	assert.Contains(t, warnings, "REDIRECT_ALLOWED_HOSTS")
}

func TestInitializeMetrics(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		cfg := &config.Config{MetricsEnabled: enabled}
		m := initializeMetrics(cfg)
		require.NotNil(t, m)
	}
}

func TestInitializeVideoCacheDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.VideoCacheType = config.VideoCacheTypeNone

	c, closer, err := initializeVideoCache(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, closer)
}

func TestInitializeVideoCacheMemory(t *testing.T) {
	c, closer, err := initializeVideoCache(context.Background(), testConfig())
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, closer)
	assert.IsType(t, &cache.MemoryCache[models.VideoInfo]{}, c)
	assert.NoError(t, closer())
}

func TestInitializeVideoCacheRedisUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.VideoCacheType = config.VideoCacheTypeRedis
	cfg.RedisAddr = "127.0.0.1:1"
	cfg.CacheInitTimeout = 200 * time.Millisecond

	_, _, err := initializeVideoCache(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis video cache")
}

func TestInitializeRateLimitRedisClientSkipped(t *testing.T) {
	client, err := initializeRateLimitRedisClient(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Nil(t, client)

	cfg := testConfig()
	cfg.EnableRateLimit = false
	cfg.RateLimitStore = config.RateLimitStoreRedis
	client, err = initializeRateLimitRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestSetupRateLimitingDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableRateLimit = false

	limiters, err := setupRateLimiting(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, limiters.signIn)
	require.NotNil(t, limiters.otp)
	require.NotNil(t, limiters.signUp)

	// Verify noop middlewares don't panic
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	assert.NotPanics(t, func() { limiters.signIn(c) })
}

func TestSetupRateLimitingMemory(t *testing.T) {
	limiters, err := setupRateLimiting(testConfig(), nil)
	require.NoError(t, err)
	require.NotNil(t, limiters.signIn)
	require.NotNil(t, limiters.otp)
	require.NotNil(t, limiters.signUp)
}

func TestSetupRateLimitingRedisWithoutClient(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitStore = config.RateLimitStoreRedis

	_, err := setupRateLimiting(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signin")
}

func TestInitializeBackends(t *testing.T) {
	cfg := testConfig()
	recorder := metrics.NewNoopMetrics()

	identity, err := initializeIdentityBackend(cfg, recorder)
	require.NoError(t, err)
	require.NotNil(t, identity)

	videoClient, err := initializeVideoBackend(cfg, recorder)
	require.NoError(t, err)
	require.NotNil(t, videoClient)

	// Missing secret still yields a client
	cfg.VideoAPISecret = ""
	videoClient, err = initializeVideoBackend(cfg, recorder)
	require.NoError(t, err)
	require.NotNil(t, videoClient)
}

func TestInitializeTokenVerifier(t *testing.T) {
	ctx := context.Background()

	verifier, err := initializeTokenVerifier(ctx, testConfig())
	require.NoError(t, err)
	assert.Nil(t, verifier)

	cfg := testConfig()
	cfg.TokenVerifyMode = config.TokenVerifyHS256
	cfg.IdentityJWTSecret = "super-secret-jwt-key"
	verifier, err = initializeTokenVerifier(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, verifier)

	cfg = testConfig()
	cfg.TokenVerifyMode = config.TokenVerifyJWKS
	cfg.IdentityJWKSURL = "http://127.0.0.1:1/.well-known/jwks.json"
	verifier, err = initializeTokenVerifier(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, verifier)

	cfg = testConfig()
	cfg.TokenVerifyMode = config.TokenVerifyHS256
	_, err = initializeTokenVerifier(ctx, cfg)
	require.Error(t, err)
}

func TestHealthChecks(t *testing.T) {
	assert.Empty(t, healthChecks(nil, nil))

	c := cache.NewMemoryCache[models.VideoInfo](0)
	defer c.Close()
	checks := healthChecks(c, nil)
	require.Contains(t, checks, "video_cache")
	assert.NoError(t, checks["video_cache"](context.Background()))
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	recorder := metrics.Init(cfg.MetricsEnabled)

	identity, err := initializeIdentityBackend(cfg, recorder)
	require.NoError(t, err)
	videoClient, err := initializeVideoBackend(cfg, recorder)
	require.NoError(t, err)
	videoCache, closer, err := initializeVideoCache(context.Background(), cfg)
	require.NoError(t, err)
	if closer != nil {
		t.Cleanup(func() { _ = closer() })
	}

	authService, videoService := initializeServices(cfg, identity, videoClient, videoCache, recorder)
	limiters, err := setupRateLimiting(cfg, nil)
	require.NoError(t, err)

	return setupRouter(
		cfg,
		initializeHandlers(authService, videoService),
		recorder,
		nil,
		limiters,
		healthChecks(videoCache, nil),
	)
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouter(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"video_cache":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/api/auth/providers", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/auth/providers/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodGet, "/api/videos", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRouterSignInRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.SignInRateLimit = 1
	r := newTestRouter(t, cfg)

	// Malformed bodies never reach the backend but still count
	w := serve(r, http.MethodPost, "/api/auth/signin", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/api/auth/signin", "{")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Sign-up has its own budget
	w = serve(r, http.MethodPost, "/api/auth/signup", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetupRouterMetricsWithToken(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsToken = "metrics-token"
	r := newTestRouter(t, cfg)

	w := serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer metrics-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouterCORS(t *testing.T) {
	cfg := testConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	r := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/signin", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateHTTPServer(t *testing.T) {
	srv := createHTTPServer(
		&config.Config{ServerAddr: ":8080"},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)
	require.NotNil(t, srv)
	assert.Equal(t, ":8080", srv.Addr)
}

func TestGinModeMap(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, ginModeMap[true])
	assert.Equal(t, gin.DebugMode, ginModeMap[false])
}

func TestCloseWithTimeout(t *testing.T) {
	assert.NoError(t, closeWithTimeout(func() error { return nil }, time.Second))
	assert.ErrorIs(
		t,
		closeWithTimeout(func() error { return assert.AnError }, time.Second),
		assert.AnError,
	)

	release := make(chan struct{})
	defer close(release)
	err := closeWithTimeout(func() error {
		<-release
		return nil
	}, 20*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestInitializeTracingDisabled(t *testing.T) {
	shutdown, err := initializeTracing(context.Background(), testConfig())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
