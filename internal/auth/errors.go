package auth

import "errors"

var (
	// Identity backend errors
	ErrGoTrueConnection  = errors.New("failed to connect to identity backend")
	ErrGoTrueInvalidResp = errors.New("invalid response from identity backend")
	ErrMissingToken      = errors.New("no access or refresh token supplied")
)
