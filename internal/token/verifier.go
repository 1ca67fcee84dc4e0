package token

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-authgate/authbridge/internal/core"
)

// Verification modes
const (
	ModeNone  = "none"
	ModeHS256 = "hs256"
	ModeJWKS  = "jwks"
)

// Options selects and configures a local token verifier
type Options struct {
	Mode     string
	Secret   string
	JWKSURL  string
	Issuer   string
	Audience string
	// HTTPClient is used to fetch the JWKS document
	HTTPClient *http.Client
}

// NewVerifier builds the verifier for opts.Mode. ModeNone returns a nil
// verifier: callers then resolve tokens through the identity backend.
func NewVerifier(ctx context.Context, opts Options) (core.TokenVerifier, error) {
	switch opts.Mode {
	case ModeNone, "":
		return nil, nil
	case ModeHS256:
		if opts.Secret == "" {
			return nil, fmt.Errorf("%w: hs256 requires a secret", ErrMissingKey)
		}
		return NewHS256Verifier(opts.Secret, opts.Issuer, opts.Audience), nil
	case ModeJWKS:
		if opts.JWKSURL == "" {
			return nil, fmt.Errorf("%w: jwks requires a key set URL", ErrMissingKey)
		}
		return NewJWKSVerifier(ctx, opts.JWKSURL, opts.Issuer, opts.Audience, opts.HTTPClient), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}
}
