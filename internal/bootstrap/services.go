package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-authgate/authbridge/internal/auth"
	"github.com/go-authgate/authbridge/internal/client"
	"github.com/go-authgate/authbridge/internal/config"
	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/services"
	"github.com/go-authgate/authbridge/internal/token"
	"github.com/go-authgate/authbridge/internal/video"

	"github.com/appleboy/go-httpclient"
)

const (
	videoAPIRetryDelay    = 1 * time.Second
	videoAPIMaxRetryDelay = 10 * time.Second
)

// initializeIdentityBackend creates the GoTrue client. The project API key is
// attached to every request by the underlying auth client.
func initializeIdentityBackend(
	cfg *config.Config,
	recorder metrics.Recorder,
) (*auth.GoTrueClient, error) {
	retryClient, err := client.CreateRetryClient(client.Options{
		AuthMode:           httpclient.AuthModeSimple,
		AuthSecret:         cfg.IdentityAPIKey,
		AuthHeader:         cfg.IdentityAPIAuthHeader,
		Timeout:            cfg.IdentityAPITimeout,
		InsecureSkipVerify: cfg.IdentityAPIInsecureSkipVerify,
		MaxRetries:         cfg.IdentityAPIMaxRetries,
		RetryDelay:         cfg.IdentityAPIRetryDelay,
		MaxRetryDelay:      cfg.IdentityAPIMaxRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create identity API client: %w", err)
	}

	log.Printf("Identity backend: %s (oauth flow: %s)", cfg.IdentityAPIURL, cfg.OAuthFlowType)
	return auth.NewGoTrueClient(
		cfg.IdentityAPIURL,
		retryClient,
		auth.FlowType(cfg.OAuthFlowType),
		recorder,
	), nil
}

// initializeVideoBackend creates the video API client. Without a secret the
// client is still created so the config-check endpoint can report the problem.
func initializeVideoBackend(cfg *config.Config, recorder metrics.Recorder) (*video.Client, error) {
	opts := client.Options{
		AuthMode:      httpclient.AuthModeNone,
		Timeout:       cfg.VideoAPITimeout,
		MaxRetries:    cfg.VideoAPIMaxRetries,
		RetryDelay:    videoAPIRetryDelay,
		MaxRetryDelay: videoAPIMaxRetryDelay,
	}
	if cfg.VideoAPISecret != "" {
		opts.AuthMode = httpclient.AuthModeSimple
		opts.AuthHeader = "Authorization"
		opts.AuthSecret = video.AuthHeaderValue(cfg.VideoAPISecret)
	}

	retryClient, err := client.CreateRetryClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create video API client: %w", err)
	}

	log.Printf("Video API: %s", cfg.VideoAPIURL)
	return video.NewClient(cfg.VideoAPIURL, retryClient, recorder), nil
}

// initializeTokenVerifier creates the local bearer token verifier. A nil
// verifier means tokens are resolved through the identity backend.
func initializeTokenVerifier(ctx context.Context, cfg *config.Config) (core.TokenVerifier, error) {
	var httpClient *http.Client
	if cfg.TokenVerifyMode == config.TokenVerifyJWKS {
		var err error
		httpClient, err = createJWKSHTTPClient(cfg)
		if err != nil {
			return nil, err
		}
	}

	verifier, err := token.NewVerifier(ctx, token.Options{
		Mode:       cfg.TokenVerifyMode,
		Secret:     cfg.IdentityJWTSecret,
		JWKSURL:    cfg.IdentityJWKSURL,
		Issuer:     cfg.IdentityJWTIssuer,
		Audience:   cfg.IdentityJWTAudience,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	switch cfg.TokenVerifyMode {
	case config.TokenVerifyHS256:
		log.Printf("Bearer tokens verified locally (hs256, audience=%q)", cfg.IdentityJWTAudience)
	case config.TokenVerifyJWKS:
		log.Printf("Bearer tokens verified locally (jwks=%s)", cfg.IdentityJWKSURL)
	default:
		log.Println("Bearer tokens resolved through the identity backend")
	}
	return verifier, nil
}

// createJWKSHTTPClient creates an HTTP client for key set requests with optimized connection pool
func createJWKSHTTPClient(cfg *config.Config) (*http.Client, error) {
	transport := client.CreateOptimizedTransport(cfg.IdentityAPIInsecureSkipVerify)

	httpClient, err := httpclient.NewAuthClient(httpclient.AuthModeNone, "",
		httpclient.WithTimeout(cfg.IdentityAPITimeout),
		httpclient.WithTransport(transport),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS HTTP client: %w", err)
	}
	return httpClient, nil
}

// initializeServices creates the auth orchestrator and the video proxy
func initializeServices(
	cfg *config.Config,
	identity core.IdentityBackend,
	videoBackend core.VideoBackend,
	videoCache core.Cache[models.VideoInfo],
	recorder metrics.Recorder,
) (*services.AuthService, *services.VideoService) {
	authService := services.NewAuthService(identity, services.AuthServiceConfig{
		DefaultRedirect:      cfg.OAuthDefaultRedirect,
		AllowedRedirectHosts: cfg.RedirectAllowedHosts,
	}, recorder)

	videoService := services.NewVideoService(videoBackend, videoCache, services.VideoServiceConfig{
		BaseURL:   cfg.VideoAPIURL,
		APISecret: cfg.VideoAPISecret,
		CacheTTL:  cfg.VideoCacheTTL,
	}, recorder)

	return authService, videoService
}
