package token

import "errors"

var (
	// ErrInvalidToken indicates the token is malformed, badly signed or has the wrong issuer or audience
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("token expired")

	// ErrMissingClaims indicates the token lacks a subject
	ErrMissingClaims = errors.New("token is missing required claims")

	// ErrUnknownMode indicates an unsupported verification mode
	ErrUnknownMode = errors.New("unknown token verification mode")

	// ErrMissingKey indicates a verification mode was chosen without its secret or key set URL
	ErrMissingKey = errors.New("token verification key is not configured")
)
