package models

import (
	"time"
)

// Session is a token pair issued by the identity backend together with its user
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"` // seconds
	ExpiresAt    int64  `json:"expires_at,omitempty"` // Unix timestamp
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// HasUser reports whether the session resolved to an identity
func (s *Session) HasUser() bool {
	return s != nil && s.User != nil
}

// IsExpired returns true if the backend-reported expiry has passed.
// Sessions without an expiry are never considered expired.
func (s *Session) IsExpired() bool {
	if s == nil || s.ExpiresAt == 0 {
		return false
	}
	return time.Now().After(time.Unix(s.ExpiresAt, 0))
}
