package auth

import "github.com/go-authgate/authbridge/internal/models"

// FlowType selects how OAuth authorization URLs are built
type FlowType string

const (
	FlowImplicit FlowType = "implicit"
	FlowPKCE     FlowType = "pkce"
)

type credentialsRequest struct {
	Email    string         `json:"email,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Password string         `json:"password,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

type otpRequest struct {
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	CreateUser bool   `json:"create_user"`
}

type verifyRequest struct {
	Type  models.OTPType `json:"type"`
	Email string         `json:"email,omitempty"`
	Phone string         `json:"phone,omitempty"`
	Token string         `json:"token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type pkceRequest struct {
	AuthCode     string `json:"auth_code"`
	CodeVerifier string `json:"code_verifier"`
}

// errorResponse covers the error shapes the backend emits across versions
type errorResponse struct {
	Code             int    `json:"code,omitempty"`
	ErrorCode        string `json:"error_code,omitempty"`
	Msg              string `json:"msg,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	Message          string `json:"message,omitempty"`
}

func (e errorResponse) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}
