package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"

	retry "github.com/appleboy/go-httpretry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	tracerName  = "github.com/go-authgate/authbridge/internal/auth"
	backendName = "identity"
	// Limit body preview to 200 characters to avoid overwhelming logs
	maxBodyPreview = 200
)

// Compile-time interface check
var _ core.IdentityBackend = (*GoTrueClient)(nil)

// GoTrueClient talks to a GoTrue-compatible identity backend over REST.
// The project key is attached by the underlying HTTP client; this type only
// adds user bearer tokens where an endpoint needs one.
type GoTrueClient struct {
	baseURL  string
	client   *retry.Client
	flowType FlowType
	recorder core.Recorder
	tracer   trace.Tracer
}

// NewGoTrueClient creates a client for the backend rooted at baseURL (e.g. https://x.supabase.co/auth/v1)
func NewGoTrueClient(
	baseURL string,
	retryClient *retry.Client,
	flowType FlowType,
	recorder core.Recorder,
) *GoTrueClient {
	if recorder == nil {
		recorder = metrics.NewNoopMetrics()
	}
	if flowType == "" {
		flowType = FlowImplicit
	}
	return &GoTrueClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   retryClient,
		flowType: flowType,
		recorder: recorder,
		tracer:   otel.Tracer(tracerName),
	}
}

// SignUp registers a user. When the backend requires email confirmation it
// answers with a bare user, returned here as a session without tokens.
func (c *GoTrueClient) SignUp(
	ctx context.Context,
	email, password string,
	metadata map[string]any,
) (*models.Session, error) {
	var raw json.RawMessage
	err := c.do(ctx, "signup", http.MethodPost, "/signup", nil,
		credentialsRequest{Email: email, Password: password, Data: metadata}, "", &raw)
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoTrueInvalidResp, err)
	}
	if session.AccessToken != "" {
		return &session, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoTrueInvalidResp, err)
	}
	if user.ID == "" {
		return &models.Session{}, nil
	}
	return &models.Session{User: &user}, nil
}

// SignInWithPassword exchanges email and password for a session
func (c *GoTrueClient) SignInWithPassword(
	ctx context.Context,
	email, password string,
) (*models.Session, error) {
	return c.tokenGrant(ctx, "password", credentialsRequest{Email: email, Password: password})
}

// SignInWithPhone asks the backend to text a one-time code to phone
func (c *GoTrueClient) SignInWithPhone(ctx context.Context, phone string) error {
	return c.do(ctx, "otp_sms", http.MethodPost, "/otp", nil,
		otpRequest{Phone: phone, CreateUser: true}, "", nil)
}

// SendMagicLink asks the backend to email a magic link. A refusal by the
// backend is reported as false, not as an error.
func (c *GoTrueClient) SendMagicLink(ctx context.Context, email, redirectTo string) (bool, error) {
	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}
	err := c.do(ctx, "otp_email", http.MethodPost, "/otp", query,
		otpRequest{Email: email, CreateUser: true}, "", nil)
	if errors.Is(err, core.ErrBackendRejected) {
		log.Printf("[GoTrue] Magic link refused: %v", err)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// VerifyOTP checks a one-time code sent by email (magic link) or SMS
func (c *GoTrueClient) VerifyOTP(
	ctx context.Context,
	id models.Identifier,
	token string,
) (*models.Session, error) {
	req := verifyRequest{Type: id.OTPType(), Token: token}
	if id.Channel == models.ChannelPhone {
		req.Phone = id.Value
	} else {
		req.Email = id.Value
	}

	var session models.Session
	if err := c.do(ctx, "verify", http.MethodPost, "/verify", nil, req, "", &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// AuthorizationURL builds the backend /authorize URL for provider.
// In PKCE mode a fresh code verifier is generated and returned with the URL;
// the caller must keep it to complete ExchangeCode.
func (c *GoTrueClient) AuthorizationURL(
	ctx context.Context,
	provider string,
	params models.OAuthParams,
) (*models.AuthorizationURL, error) {
	_, span := c.tracer.Start(ctx, "gotrue.authorize",
		trace.WithAttributes(attribute.String("oauth.provider", provider)))
	defer span.End()

	u, err := url.Parse(c.baseURL + "/authorize")
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("invalid identity backend URL: %w", err)
	}

	query := url.Values{}
	for k, v := range params.QueryParams {
		query.Set(k, v)
	}
	query.Set("provider", provider)
	if params.RedirectTo != "" {
		query.Set("redirect_to", params.RedirectTo)
	}
	if params.Scopes != "" {
		query.Set("scopes", params.Scopes)
	}

	result := &models.AuthorizationURL{Provider: provider}
	if c.flowType == FlowPKCE {
		result.CodeVerifier = oauth2.GenerateVerifier()
		query.Set("code_challenge", oauth2.S256ChallengeFromVerifier(result.CodeVerifier))
		query.Set("code_challenge_method", "s256")
	}

	u.RawQuery = query.Encode()
	result.URL = u.String()
	return result, nil
}

// EstablishSession resolves a token pair into a session. The access token is
// checked first; if the backend rejects it, or if only a refresh token is
// supplied, the refresh token is exchanged for a new session.
func (c *GoTrueClient) EstablishSession(
	ctx context.Context,
	accessToken, refreshToken string,
) (*models.Session, error) {
	if accessToken == "" && refreshToken == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrBackendRejected, ErrMissingToken)
	}

	if accessToken != "" {
		user, err := c.GetUser(ctx, accessToken)
		if err == nil {
			return &models.Session{
				AccessToken:  accessToken,
				TokenType:    "bearer",
				RefreshToken: refreshToken,
				User:         user,
			}, nil
		}
		if refreshToken == "" || !errors.Is(err, core.ErrBackendRejected) {
			return nil, err
		}
	}

	return c.RefreshSession(ctx, refreshToken)
}

// RefreshSession exchanges a refresh token for a new session
func (c *GoTrueClient) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	return c.tokenGrant(ctx, "refresh_token", refreshRequest{RefreshToken: refreshToken})
}

// ExchangeCode completes a PKCE flow
func (c *GoTrueClient) ExchangeCode(
	ctx context.Context,
	authCode, codeVerifier string,
) (*models.Session, error) {
	return c.tokenGrant(ctx, "pkce", pkceRequest{AuthCode: authCode, CodeVerifier: codeVerifier})
}

// SignOut revokes the session behind accessToken. An empty token is a no-op.
func (c *GoTrueClient) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return c.do(ctx, "logout", http.MethodPost, "/logout", nil, nil, accessToken, nil)
}

// GetUser returns the user owning accessToken
func (c *GoTrueClient) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "user", http.MethodGet, "/user", nil, nil, accessToken, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: user response missing id", ErrGoTrueInvalidResp)
	}
	return &user, nil
}

func (c *GoTrueClient) tokenGrant(ctx context.Context, grant string, body any) (*models.Session, error) {
	var session models.Session
	query := url.Values{"grant_type": {grant}}
	if err := c.do(ctx, "token_"+grant, http.MethodPost, "/token", query, body, "", &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing access_token", ErrGoTrueInvalidResp)
	}
	return &session, nil
}

// do performs one backend call inside a span and decodes a 2xx JSON body into out.
// 4xx answers (other than 429) are wrapped with core.ErrBackendRejected.
func (c *GoTrueClient) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	body any,
	bearer string,
	out any,
) (err error) {
	ctx, span := c.tracer.Start(ctx, "gotrue."+op, trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	))
	start := time.Now()
	defer func() {
		c.recorder.RecordExternalAPICall(backendName, op, time.Since(start), err == nil)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, op+" failed")
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGoTrueConnection, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	// The project key header is added by the HTTP client
	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil && !exhaustedWithResponse(err, resp) {
		return fmt.Errorf("%w: %v", ErrGoTrueConnection, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response", ErrGoTrueInvalidResp)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrGoTrueInvalidResp, err)
	}
	return nil
}

// exhaustedWithResponse reports whether the retry client gave up on a 429/5xx
// answer but still handed back the last response, whose body carries the
// backend's error text.
func exhaustedWithResponse(err error, resp *http.Response) bool {
	var retryErr *retry.RetryError
	return resp != nil && errors.As(err, &retryErr)
}

func statusError(status int, body []byte) error {
	detail := ""
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		detail = errResp.text()
	}
	if detail == "" {
		detail = string(body)
		if len(detail) > maxBodyPreview {
			detail = detail[:maxBodyPreview] + "..."
		}
	}

	if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
		return fmt.Errorf("%w: HTTP %d - %s", core.ErrBackendRejected, status, detail)
	}
	return fmt.Errorf("%w: HTTP %d - %s", ErrGoTrueInvalidResp, status, detail)
}
