package core

import (
	"context"

	"github.com/go-authgate/authbridge/internal/models"
)

// VideoBackend is the remote video hosting API
type VideoBackend interface {
	ListVideos(ctx context.Context, page, limit int) (*models.VideoList, error)
	GetVideo(ctx context.Context, videoID string) (*models.VideoInfo, error)
	GenerateOTP(ctx context.Context, req models.PlaybackOTPRequest) (*models.PlaybackOTP, error)
	UploadCredentials(
		ctx context.Context,
		req models.VideoUploadRequest,
	) (*models.UploadCredentials, error)
	UpdateVideo(
		ctx context.Context,
		videoID string,
		req models.VideoUploadRequest,
	) (*models.VideoInfo, error)
	DeleteVideo(ctx context.Context, videoID string) (bool, error)
}
