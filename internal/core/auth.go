package core

import (
	"errors"

	"github.com/go-authgate/authbridge/internal/models"
)

// ErrBackendRejected marks an error where the identity backend answered but
// refused the request (bad credentials, expired code, unknown token).
var ErrBackendRejected = errors.New("rejected by identity backend")

// ErrorKind classifies a failed result
type ErrorKind string

const (
	KindValidationFailed ErrorKind = "validation_failed"
	KindBackendRejected  ErrorKind = "backend_rejected"
	KindTransportError   ErrorKind = "transport_error"
)

// ClassifyError maps a backend error to its kind
func ClassifyError(err error) ErrorKind {
	if errors.Is(err, ErrBackendRejected) {
		return KindBackendRejected
	}
	return KindTransportError
}

// AuthError is the error view of a failed result
type AuthError struct {
	Kind    ErrorKind
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// AuthResult is the outcome of any operation that yields an identity.
// Success implies a user and an access token; failure implies a message and a kind.
type AuthResult struct {
	Success      bool         `json:"success"`
	User         *models.User `json:"user,omitempty"`
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	ErrorKind    ErrorKind    `json:"error_kind,omitempty"`
}

// NewAuthSuccess builds a successful result from a session.
// A session without user or access token yields a backend_rejected failure instead.
func NewAuthSuccess(session *models.Session, failureMessage string) AuthResult {
	if !session.HasUser() || session.AccessToken == "" {
		return NewAuthFailure(KindBackendRejected, failureMessage)
	}
	return AuthResult{
		Success:      true,
		User:         session.User,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}
}

// NewAuthFailure builds a failed result
func NewAuthFailure(kind ErrorKind, message string) AuthResult {
	return AuthResult{ErrorKind: kind, ErrorMessage: message}
}

// Err returns nil on success, otherwise an *AuthError
func (r AuthResult) Err() error {
	if r.Success {
		return nil
	}
	return &AuthError{Kind: r.ErrorKind, Message: r.ErrorMessage}
}

// SendResult is the outcome of sending a magic link or an OTP
type SendResult struct {
	Success      bool           `json:"success"`
	SentTo       string         `json:"sent_to,omitempty"`
	Channel      models.Channel `json:"channel,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	ErrorKind    ErrorKind      `json:"error_kind,omitempty"`
}

// NewSendSuccess builds a successful send result
func NewSendSuccess(to models.Identifier) SendResult {
	return SendResult{Success: true, SentTo: to.Value, Channel: to.Channel}
}

// NewSendFailure builds a failed send result
func NewSendFailure(kind ErrorKind, message string) SendResult {
	return SendResult{ErrorKind: kind, ErrorMessage: message}
}

// Err returns nil on success, otherwise an *AuthError
func (r SendResult) Err() error {
	if r.Success {
		return nil
	}
	return &AuthError{Kind: r.ErrorKind, Message: r.ErrorMessage}
}

// OAuthURLResult is the outcome of building an OAuth authorization URL
type OAuthURLResult struct {
	Success          bool      `json:"success"`
	Provider         string    `json:"provider,omitempty"`
	AuthorizationURL string    `json:"url,omitempty"`
	CodeVerifier     string    `json:"code_verifier,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	ErrorKind        ErrorKind `json:"error_kind,omitempty"`
}

// NewOAuthURLSuccess builds a successful OAuth URL result
func NewOAuthURLSuccess(u *models.AuthorizationURL) OAuthURLResult {
	return OAuthURLResult{
		Success:          true,
		Provider:         u.Provider,
		AuthorizationURL: u.URL,
		CodeVerifier:     u.CodeVerifier,
	}
}

// NewOAuthURLFailure builds a failed OAuth URL result
func NewOAuthURLFailure(kind ErrorKind, message string) OAuthURLResult {
	return OAuthURLResult{ErrorKind: kind, ErrorMessage: message}
}

// Err returns nil on success, otherwise an *AuthError
func (r OAuthURLResult) Err() error {
	if r.Success {
		return nil
	}
	return &AuthError{Kind: r.ErrorKind, Message: r.ErrorMessage}
}
