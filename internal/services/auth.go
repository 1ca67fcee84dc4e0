package services

import (
	"context"
	"log"
	"maps"
	"strings"
	"time"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/providers"
	"github.com/go-authgate/authbridge/internal/util"
)

// Modalities, as recorded in metrics
const (
	ModalitySignUp        = "signup"
	ModalityPassword      = "password"
	ModalityMagicLink     = "magic_link"
	ModalityOTP           = "otp"
	ModalityVerifyOTP     = "verify_otp"
	ModalityOAuthCallback = "oauth_callback"
	ModalityPKCE          = "pkce"
)

// Session operations, as recorded in metrics
const (
	OpSignOut      = "sign_out"
	OpCurrentUser  = "current_user"
	OpRefresh      = "refresh"
	OpResolveToken = "resolve_token"
)

const outcomeSuccess = "success"

// Failure messages shown to callers
const (
	msgSignUpRejected       = "Sign up failed. Please check your credentials."
	msgSignInRejected       = "Invalid credentials. Please check your email and password."
	msgMagicLinkRejected    = "Failed to send magic link"
	msgIdentifierRequired   = "Either email or phone number is required for OTP verification"
	msgTokenRequired        = "Verification token is required"
	msgOTPRejected          = "Invalid or expired OTP"
	msgRedirectNotAllowed   = "Redirect URL is not allowed"
	msgUnsupportedProvider  = "Unsupported OAuth provider: "
	msgOAuthTokenRequired   = "Access token is required"
	msgOAuthRejected        = "Failed to authenticate with OAuth tokens"
	msgCodeExchangeRequired = "Authorization code and code verifier are required"
	msgCodeExchangeRejected = "Failed to exchange authorization code"
)

// AuthServiceConfig holds the orchestrator settings taken from configuration
type AuthServiceConfig struct {
	// DefaultRedirect is used when a caller does not supply redirect_to
	DefaultRedirect string
	// AllowedRedirectHosts restricts redirect targets; empty allows any http(s) host
	AllowedRedirectHosts []string
}

// AuthService unifies all login modalities behind one result contract.
// It never returns an error or panics: every backend failure is turned into a
// failed result. Session state lives in the request's models.SessionScope.
type AuthService struct {
	backend  core.IdentityBackend
	config   AuthServiceConfig
	recorder core.Recorder
}

func NewAuthService(
	backend core.IdentityBackend,
	cfg AuthServiceConfig,
	recorder core.Recorder,
) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoopMetrics()
	}
	return &AuthService{
		backend:  backend,
		config:   cfg,
		recorder: recorder,
	}
}

// SignUp registers a user with email and password, forwarding the rest of the
// profile as user metadata.
func (s *AuthService) SignUp(ctx context.Context, profile models.SignUpProfile) core.AuthResult {
	start := time.Now()
	metadata := map[string]any{
		"display_name": profile.FullName,
		"phone":        profile.Phone,
	}

	session, err := s.backend.SignUp(ctx, profile.Email, profile.Password, metadata)
	if err != nil {
		log.Printf("[Auth] Sign up failed for email=%s: %v", profile.Email, err)
		return s.authFailure(ModalitySignUp, start, err, msgSignUpRejected, "Sign up failed: ")
	}

	result := core.NewAuthSuccess(session, msgSignUpRejected)
	if !result.Success && session.HasUser() {
		log.Printf("[Auth] Sign up for email=%s is pending confirmation", profile.Email)
	}
	return s.finishAuth(ctx, ModalitySignUp, start, session, result)
}

// SignIn authenticates with email and password
func (s *AuthService) SignIn(ctx context.Context, email, password string) core.AuthResult {
	start := time.Now()

	session, err := s.backend.SignInWithPassword(ctx, email, password)
	if err != nil {
		log.Printf("[Auth] Sign in failed for email=%s: %v", email, err)
		return s.authFailure(ModalityPassword, start, err, msgSignInRejected, "Sign in failed: ")
	}

	result := core.NewAuthSuccess(session, msgSignInRejected)
	return s.finishAuth(ctx, ModalityPassword, start, session, result)
}

// SignOut invalidates a session. With a token pair it first establishes that
// session; without one it signs out the session held by the request scope.
func (s *AuthService) SignOut(ctx context.Context, token, refreshToken string) bool {
	scope := models.SessionScopeFromContext(ctx)

	var accessToken string
	if token != "" || refreshToken != "" {
		session, err := s.backend.EstablishSession(ctx, token, refreshToken)
		if err != nil {
			log.Printf("[Auth] Sign out failed to establish session: %v", err)
			s.recorder.RecordSessionOperation(OpSignOut, false)
			return false
		}
		scope.Set(session)
		accessToken = session.AccessToken
	} else if current := scope.Session(); current != nil {
		accessToken = current.AccessToken
	}

	if err := s.backend.SignOut(ctx, accessToken); err != nil {
		log.Printf("[Auth] Sign out failed: %v", err)
		s.recorder.RecordSessionOperation(OpSignOut, false)
		return false
	}

	scope.Clear()
	s.recorder.RecordSessionOperation(OpSignOut, true)
	return true
}

// GetCurrentUser returns the email of the user behind token. Without a token
// it reads the user of the request-scoped session. The scope is never modified.
func (s *AuthService) GetCurrentUser(ctx context.Context, token string) (string, bool) {
	if token == "" {
		session := models.SessionScopeFromContext(ctx).Session()
		if !session.HasUser() {
			return "", false
		}
		return session.User.Email, true
	}

	user, err := s.backend.GetUser(ctx, token)
	if err != nil || user == nil {
		if err != nil {
			log.Printf("[Auth] Failed to resolve current user: %v", err)
		}
		s.recorder.RecordSessionOperation(OpCurrentUser, false)
		return "", false
	}
	s.recorder.RecordSessionOperation(OpCurrentUser, true)
	return user.Email, true
}

// SendMagicLink emails a sign-in link
func (s *AuthService) SendMagicLink(ctx context.Context, email, redirectTo string) core.SendResult {
	start := time.Now()
	if redirectTo == "" {
		redirectTo = s.config.DefaultRedirect
	}
	if !util.IsRedirectAllowed(redirectTo, s.config.AllowedRedirectHosts) {
		return s.sendFailure(ModalityMagicLink, start,
			core.KindValidationFailed, msgRedirectNotAllowed)
	}

	ok, err := s.backend.SendMagicLink(ctx, email, redirectTo)
	if err != nil {
		log.Printf("[Auth] Magic link failed for email=%s: %v", email, err)
		return s.sendFailure(ModalityMagicLink, start,
			core.ClassifyError(err), "Magic link failed: "+err.Error())
	}
	if !ok {
		return s.sendFailure(ModalityMagicLink, start, core.KindBackendRejected, msgMagicLinkRejected)
	}

	log.Printf("[Auth] Magic link sent to email=%s", email)
	s.recorder.RecordAuthAttempt(ModalityMagicLink, outcomeSuccess, time.Since(start))
	return core.NewSendSuccess(models.ByEmail(email))
}

// SendOTP texts a one-time code. The phone number is masked in logs only.
func (s *AuthService) SendOTP(ctx context.Context, phone string) core.SendResult {
	start := time.Now()
	masked := util.MaskPhone(phone)

	if err := s.backend.SignInWithPhone(ctx, phone); err != nil {
		log.Printf("[Auth] OTP failed for phone=%s: %v", masked, err)
		return s.sendFailure(ModalityOTP, start, core.ClassifyError(err), "OTP failed: "+err.Error())
	}

	log.Printf("[Auth] OTP sent to phone=%s", masked)
	s.recorder.RecordAuthAttempt(ModalityOTP, outcomeSuccess, time.Since(start))
	return core.NewSendSuccess(models.ByPhone(phone))
}

// SendCode dispatches to SendMagicLink or SendOTP based on the identifier channel
func (s *AuthService) SendCode(ctx context.Context, id models.Identifier, redirectTo string) core.SendResult {
	if id.Channel == models.ChannelPhone {
		return s.SendOTP(ctx, id.Value)
	}
	return s.SendMagicLink(ctx, id.Value, redirectTo)
}

// VerifyOTP checks a one-time code for an email or a phone. Email wins when both are set.
func (s *AuthService) VerifyOTP(ctx context.Context, token, email, phone string) core.AuthResult {
	id, ok := models.ResolveIdentifier(email, phone)
	if !ok {
		s.recorder.RecordAuthAttempt(ModalityVerifyOTP, string(core.KindValidationFailed), 0)
		return core.NewAuthFailure(core.KindValidationFailed, msgIdentifierRequired)
	}
	return s.VerifyOTPFor(ctx, id, token)
}

// VerifyOTPFor checks a one-time code for an explicit identifier
func (s *AuthService) VerifyOTPFor(ctx context.Context, id models.Identifier, token string) core.AuthResult {
	start := time.Now()
	if id.Value == "" {
		return s.authFailure(ModalityVerifyOTP, start, nil, msgIdentifierRequired, "")
	}
	if token == "" {
		return s.authFailure(ModalityVerifyOTP, start, nil, msgTokenRequired, "")
	}

	session, err := s.backend.VerifyOTP(ctx, id, token)
	if err != nil {
		log.Printf("[Auth] OTP verification failed for %s: %v", s.describe(id), err)
		return s.authFailure(ModalityVerifyOTP, start, err, msgOTPRejected, "OTP verification failed: ")
	}

	result := core.NewAuthSuccess(session, msgOTPRejected)
	return s.finishAuth(ctx, ModalityVerifyOTP, start, session, result)
}

// GetOAuthURL builds the authorization URL for provider. The provider is
// checked against everything the backend supports, not only the curated list.
func (s *AuthService) GetOAuthURL(
	ctx context.Context,
	provider string,
	opts *models.OAuthOptions,
) core.OAuthURLResult {
	name, ok := providers.ParseBackendProvider(provider)
	if !ok {
		s.recorder.RecordOAuthURL("unsupported", false)
		return core.NewOAuthURLFailure(core.KindValidationFailed, msgUnsupportedProvider+provider)
	}

	params := models.OAuthParams{
		RedirectTo: s.config.DefaultRedirect,
		Scopes:     providers.DefaultScopeString(name),
	}
	if opts != nil {
		if opts.RedirectTo != "" {
			params.RedirectTo = opts.RedirectTo
		}
		if len(opts.Scopes) > 0 {
			params.Scopes = strings.Join(opts.Scopes, " ")
		}
		if len(opts.QueryParams) > 0 {
			params.QueryParams = maps.Clone(opts.QueryParams)
		}
	}

	if !util.IsRedirectAllowed(params.RedirectTo, s.config.AllowedRedirectHosts) {
		s.recorder.RecordOAuthURL(name, false)
		return core.NewOAuthURLFailure(core.KindValidationFailed, msgRedirectNotAllowed)
	}

	authURL, err := s.backend.AuthorizationURL(ctx, name, params)
	if err != nil {
		log.Printf("[Auth] OAuth URL generation failed for provider=%s: %v", name, err)
		s.recorder.RecordOAuthURL(name, false)
		return core.NewOAuthURLFailure(core.ClassifyError(err), "OAuth URL generation failed: "+err.Error())
	}

	s.recorder.RecordOAuthURL(name, true)
	return core.NewOAuthURLSuccess(authURL)
}

// HandleOAuthCallback turns the tokens from an implicit-flow redirect into a session
func (s *AuthService) HandleOAuthCallback(
	ctx context.Context,
	accessToken, refreshToken string,
) core.AuthResult {
	start := time.Now()
	if accessToken == "" {
		return s.authFailure(ModalityOAuthCallback, start, nil, msgOAuthTokenRequired, "")
	}

	session, err := s.backend.EstablishSession(ctx, accessToken, refreshToken)
	if err != nil {
		log.Printf("[Auth] OAuth callback failed: %v", err)
		return s.authFailure(ModalityOAuthCallback, start, err, msgOAuthRejected, "OAuth callback failed: ")
	}

	result := core.NewAuthSuccess(session, msgOAuthRejected)
	return s.finishAuth(ctx, ModalityOAuthCallback, start, session, result)
}

// ExchangeCodeForSession completes a PKCE flow
func (s *AuthService) ExchangeCodeForSession(
	ctx context.Context,
	authCode, codeVerifier string,
) core.AuthResult {
	start := time.Now()
	if authCode == "" || codeVerifier == "" {
		return s.authFailure(ModalityPKCE, start, nil, msgCodeExchangeRequired, "")
	}

	session, err := s.backend.ExchangeCode(ctx, authCode, codeVerifier)
	if err != nil {
		log.Printf("[Auth] Code exchange failed: %v", err)
		return s.authFailure(ModalityPKCE, start, err, msgCodeExchangeRejected, "Code exchange failed: ")
	}

	result := core.NewAuthSuccess(session, msgCodeExchangeRejected)
	return s.finishAuth(ctx, ModalityPKCE, start, session, result)
}

// RefreshSession exchanges a refresh token for a new session and stores it in
// the request scope. The reason for a failure is only logged.
func (s *AuthService) RefreshSession(ctx context.Context, refreshToken string) bool {
	if refreshToken == "" {
		s.recorder.RecordSessionOperation(OpRefresh, false)
		return false
	}

	session, err := s.backend.RefreshSession(ctx, refreshToken)
	if err != nil || !session.HasUser() {
		if err != nil {
			log.Printf("[Auth] Session refresh failed: %v", err)
		}
		s.recorder.RecordSessionOperation(OpRefresh, false)
		return false
	}

	models.SessionScopeFromContext(ctx).Set(session)
	s.recorder.RecordSessionOperation(OpRefresh, true)
	return true
}

// IsTokenValid reports whether token resolves to a user
func (s *AuthService) IsTokenValid(ctx context.Context, token string) bool {
	_, ok := s.GetUserFromToken(ctx, token)
	return ok
}

// GetUserFromToken establishes a session from token, stores it in the request
// scope and returns its user.
func (s *AuthService) GetUserFromToken(ctx context.Context, token string) (*models.User, bool) {
	if token == "" {
		return nil, false
	}

	session, err := s.backend.EstablishSession(ctx, token, "")
	if err != nil || !session.HasUser() {
		if err != nil {
			log.Printf("[Auth] Token resolution failed: %v", err)
		}
		s.recorder.RecordSessionOperation(OpResolveToken, false)
		return nil, false
	}

	models.SessionScopeFromContext(ctx).Set(session)
	s.recorder.RecordSessionOperation(OpResolveToken, true)
	return session.User, true
}

// authFailure builds a failed AuthResult. A nil err is a validation failure
// carrying rejectedMsg; a rejection also carries rejectedMsg; anything else
// carries transportPrefix followed by the error text.
func (s *AuthService) authFailure(
	modality string,
	start time.Time,
	err error,
	rejectedMsg, transportPrefix string,
) core.AuthResult {
	var result core.AuthResult
	switch {
	case err == nil:
		result = core.NewAuthFailure(core.KindValidationFailed, rejectedMsg)
	case core.ClassifyError(err) == core.KindBackendRejected:
		result = core.NewAuthFailure(core.KindBackendRejected, rejectedMsg)
	default:
		result = core.NewAuthFailure(core.KindTransportError, transportPrefix+err.Error())
	}
	s.recorder.RecordAuthAttempt(modality, string(result.ErrorKind), time.Since(start))
	return result
}

// finishAuth records the outcome and stores a successful session in the request scope
func (s *AuthService) finishAuth(
	ctx context.Context,
	modality string,
	start time.Time,
	session *models.Session,
	result core.AuthResult,
) core.AuthResult {
	if !result.Success {
		s.recorder.RecordAuthAttempt(modality, string(result.ErrorKind), time.Since(start))
		return result
	}
	models.SessionScopeFromContext(ctx).Set(session)
	s.recorder.RecordAuthAttempt(modality, outcomeSuccess, time.Since(start))
	return result
}

func (s *AuthService) sendFailure(
	modality string,
	start time.Time,
	kind core.ErrorKind,
	message string,
) core.SendResult {
	s.recorder.RecordAuthAttempt(modality, string(kind), time.Since(start))
	return core.NewSendFailure(kind, message)
}

func (s *AuthService) describe(id models.Identifier) string {
	if id.Channel == models.ChannelPhone {
		return "phone=" + util.MaskPhone(id.Value)
	}
	return "email=" + id.Value
}
