package video

import "errors"

var (
	ErrVideoAPIConnection  = errors.New("failed to connect to video API")
	ErrVideoAPIInvalidResp = errors.New("invalid response from video API")
	ErrVideoNotFound       = errors.New("video not found")
)
