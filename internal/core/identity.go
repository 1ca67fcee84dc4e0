package core

import (
	"context"

	"github.com/go-authgate/authbridge/internal/models"
)

// IdentityBackend is the remote identity service the orchestrator delegates to.
// Implementations wrap refusals with ErrBackendRejected; any other error is a
// transport failure.
type IdentityBackend interface {
	// SignUp registers a user. The returned session carries no access token when
	// the backend requires email confirmation first.
	SignUp(
		ctx context.Context,
		email, password string,
		metadata map[string]any,
	) (*models.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignInWithPhone(ctx context.Context, phone string) error
	// SendMagicLink reports whether the backend accepted the request
	SendMagicLink(ctx context.Context, email, redirectTo string) (bool, error)
	VerifyOTP(ctx context.Context, id models.Identifier, token string) (*models.Session, error)
	AuthorizationURL(
		ctx context.Context,
		provider string,
		params models.OAuthParams,
	) (*models.AuthorizationURL, error)
	// EstablishSession resolves a token pair into a session. Either token may be empty.
	EstablishSession(ctx context.Context, accessToken, refreshToken string) (*models.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error)
	ExchangeCode(ctx context.Context, authCode, codeVerifier string) (*models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*models.User, error)
}
