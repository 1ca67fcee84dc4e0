package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/go-authgate/authbridge/internal/config"
	"github.com/go-authgate/authbridge/internal/telemetry"
	"github.com/go-authgate/authbridge/internal/version"
)

// initializeTracing sets up OpenTelemetry tracing when enabled
func initializeTracing(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:        cfg.OTelEnabled,
		Endpoint:       cfg.OTelEndpoint,
		ServiceName:    cfg.OTelServiceName,
		ServiceVersion: version.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if cfg.OTelEnabled {
		log.Printf("Tracing enabled (endpoint: %s, service: %s)", cfg.OTelEndpoint, cfg.OTelServiceName)
	}
	return shutdown, nil
}
