package util

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"+15551234567", "+1***67"},
		{"12345", "12***45"},
		{"1234", "1234"},
		{"", ""},
		{"＋１５５５１２３", "＋１***２３"},
		{"１２３４", "１２３４"},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			got := MaskPhone(tt.phone)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestIsRedirectAllowed(t *testing.T) {
	allowed := []string{"app.example.com", "*.preview.example.com", "localhost:3000"}
	tests := []struct {
		name     string
		redirect string
		hosts    []string
		want     bool
	}{
		{"empty", "", allowed, true},
		{"exact host", "https://app.example.com/auth/callback", allowed, true},
		{"host case-insensitive", "https://APP.example.com/cb", allowed, true},
		{"wildcard subdomain", "https://pr-12.preview.example.com/cb", allowed, true},
		{"wildcard does not match apex", "https://preview.example.com/cb", allowed, false},
		{"host with port", "http://localhost:3000/cb", allowed, true},
		{"other host", "https://evil.com/cb", allowed, false},
		{"suffix trick", "https://app.example.com.evil.com/cb", allowed, false},
		{"userinfo", "https://app.example.com@evil.com/cb", allowed, false},
		{"relative path", "/cb", allowed, false},
		{"protocol relative", "//evil.com", allowed, false},
		{"javascript scheme", "javascript:alert(1)", allowed, false},
		{"header injection", "https://app.example.com/\r\nSet-Cookie:x", allowed, false},
		{"no allowlist accepts https", "https://anything.dev/cb", nil, true},
		{"no allowlist still rejects schemes", "data:text/html,hi", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRedirectAllowed(tt.redirect, tt.hosts))
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))

	ctx = WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
}
