package models

import (
	"time"
)

// User is the identity record owned by the identity backend.
// AuthBridge only reads it; the backend stays the source of truth.
type User struct {
	ID               string         `json:"id"`
	Aud              string         `json:"aud,omitempty"`
	Role             string         `json:"role,omitempty"`
	Email            string         `json:"email,omitempty"`
	Phone            string         `json:"phone,omitempty"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	PhoneConfirmedAt *time.Time     `json:"phone_confirmed_at,omitempty"`
	LastSignInAt     *time.Time     `json:"last_sign_in_at,omitempty"`
	AppMetadata      map[string]any `json:"app_metadata,omitempty"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// DisplayName returns the display_name metadata set at sign up, if any
func (u *User) DisplayName() string {
	if u == nil || u.UserMetadata == nil {
		return ""
	}
	name, _ := u.UserMetadata["display_name"].(string)
	return name
}

// Provider returns the provider the user last signed in with ("email", "github", ...)
func (u *User) Provider() string {
	if u == nil || u.AppMetadata == nil {
		return ""
	}
	provider, _ := u.AppMetadata["provider"].(string)
	return provider
}

// SignUpProfile is the caller-supplied profile for password sign up
type SignUpProfile struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"     binding:"required,email"`
	Password string `json:"password"  binding:"required"`
	Phone    string `json:"phone"     binding:"required"`
}
