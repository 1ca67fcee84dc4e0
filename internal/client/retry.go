package client

import (
	"fmt"
	"time"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// Options configures an upstream API client
type Options struct {
	AuthMode           string // httpclient.AuthModeNone / AuthModeSimple / AuthModeHMAC
	AuthSecret         string
	AuthHeader         string
	Timeout            time.Duration
	InsecureSkipVerify bool
	MaxRetries         int
	RetryDelay         time.Duration
	MaxRetryDelay      time.Duration
}

// CreateRetryClient creates an HTTP client with retry support and authentication.
// This is used for service-to-service communication with the identity and video APIs.
func CreateRetryClient(opts Options) (*retry.Client, error) {
	httpOpts := []httpclient.ClientOption{
		httpclient.WithTimeout(opts.Timeout),
		httpclient.WithTransport(CreateOptimizedTransport(opts.InsecureSkipVerify)),
	}
	if opts.AuthHeader != "" {
		httpOpts = append(httpOpts, httpclient.WithHeaderName(opts.AuthHeader))
	}

	// Create HTTP client with automatic authentication
	client, err := httpclient.NewAuthClient(opts.AuthMode, opts.AuthSecret, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	// Wrap with retry client
	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(client),
		retry.WithMaxRetries(opts.MaxRetries),
		retry.WithInitialRetryDelay(opts.RetryDelay),
		retry.WithMaxRetryDelay(opts.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
