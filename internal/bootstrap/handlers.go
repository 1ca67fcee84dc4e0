package bootstrap

import (
	"github.com/go-authgate/authbridge/internal/handlers"
	"github.com/go-authgate/authbridge/internal/services"
)

// handlerSet holds all HTTP handlers and required services
type handlerSet struct {
	auth        *handlers.AuthHandler
	video       *handlers.VideoHandler
	authService *services.AuthService
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	authService *services.AuthService,
	videoService *services.VideoService,
) handlerSet {
	return handlerSet{
		auth:        handlers.NewAuthHandler(authService),
		video:       handlers.NewVideoHandler(videoService),
		authService: authService,
	}
}
