package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/middleware"
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/services"
	"github.com/go-authgate/authbridge/internal/util"

	"github.com/gin-gonic/gin"
)

type signInRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type magicLinkRequest struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	RedirectTo string `json:"redirect_to"`
}

type verifyRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type oauthCallbackRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type oauthExchangeRequest struct {
	AuthCode     string `json:"auth_code"     binding:"required"`
	CodeVerifier string `json:"code_verifier" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthHandler exposes the auth orchestrator over HTTP
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: s}
}

// SignUp registers a new user
func (h *AuthHandler) SignUp(c *gin.Context) {
	var profile models.SignUpProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respondBindError(c, err)
		return
	}
	result := h.authService.SignUp(c.Request.Context(), profile)
	respondAuth(c, result, http.StatusBadRequest, "User created successfully")
}

// SignIn authenticates with email and password
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	respondAuth(c, result, http.StatusUnauthorized, "Sign in successful")
}

// SignOut invalidates the caller's session. Both the bearer token and the body are optional.
func (h *AuthHandler) SignOut(c *gin.Context) {
	var req signOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	if !h.authService.SignOut(c.Request.Context(), middleware.BearerToken(c), req.RefreshToken) {
		respondError(c, http.StatusBadRequest, core.KindBackendRejected, "Sign out failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// Me returns the email of the bearer token's user
func (h *AuthHandler) Me(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		respondError(c, http.StatusUnauthorized, core.KindValidationFailed,
			"No authorization token provided")
		return
	}

	email, ok := h.authService.GetCurrentUser(c.Request.Context(), token)
	if !ok {
		respondError(c, http.StatusUnauthorized, core.KindBackendRejected, "Invalid or expired token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    email,
		"message": "Current user retrieved successfully",
	})
}

// SendCode sends a magic link to an email, or an OTP to a phone when no email is given
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req magicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, ok := models.ResolveIdentifier(req.Email, req.Phone)
	if !ok {
		respondError(c, http.StatusBadRequest, core.KindValidationFailed,
			"Either email or phone number is required")
		return
	}

	result := h.authService.SendCode(c.Request.Context(), id, req.RedirectTo)
	if !result.Success {
		respondError(c, http.StatusBadRequest, result.ErrorKind, result.ErrorMessage)
		return
	}

	message := "Magic link sent successfully"
	if result.Channel == models.ChannelPhone {
		message = "OTP sent successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"sent_to": result.SentTo,
		"type":    result.Channel,
	})
}

// Verify checks a one-time code
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Token == "" {
		respondError(c, http.StatusBadRequest, core.KindValidationFailed, "OTP token is required")
		return
	}

	result := h.authService.VerifyOTP(c.Request.Context(), req.Token, req.Email, req.Phone)
	respondAuth(c, result, http.StatusBadRequest, "OTP verification successful")
}

// OAuthURL builds an authorization URL. Scopes are comma separated.
func (h *AuthHandler) OAuthURL(c *gin.Context) {
	opts := &models.OAuthOptions{
		RedirectTo: c.Query("redirect_to"),
	}
	if scopes := c.Query("scopes"); scopes != "" {
		for _, s := range strings.Split(scopes, ",") {
			if s = strings.TrimSpace(s); s != "" {
				opts.Scopes = append(opts.Scopes, s)
			}
		}
	}

	result := h.authService.GetOAuthURL(c.Request.Context(), c.Query("provider"), opts)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// OAuthCallback completes an implicit-flow login from the redirect's tokens
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	var req oauthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result := h.authService.HandleOAuthCallback(c.Request.Context(), req.AccessToken, req.RefreshToken)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// OAuthExchange completes a PKCE login
func (h *AuthHandler) OAuthExchange(c *gin.Context) {
	var req oauthExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result := h.authService.ExchangeCodeForSession(c.Request.Context(), req.AuthCode, req.CodeVerifier)
	respondAuth(c, result, http.StatusBadRequest, "Code exchange successful")
}

// Refresh exchanges a refresh token for a new session
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if !h.authService.RefreshSession(ctx, req.RefreshToken) {
		respondError(c, http.StatusUnauthorized, core.KindBackendRejected, "Failed to refresh session")
		return
	}

	session := models.SessionScopeFromContext(ctx).Session()
	if session == nil {
		// no scope installed on this route
		log.Printf("[Auth] request_id=%s refresh succeeded without a session scope",
			util.GetRequestIDFromContext(c))
		respondError(c, http.StatusInternalServerError, core.KindTransportError, "Session unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          session.User,
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"expires_at":    session.ExpiresAt,
		"message":       "Session refreshed",
	})
}

// Validate reports whether the bearer token still resolves to a user
func (h *AuthHandler) Validate(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		respondError(c, http.StatusUnauthorized, core.KindValidationFailed,
			"No authorization token provided")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": h.authService.IsTokenValid(c.Request.Context(), token)})
}
