package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"
)

const (
	defaultVideoPage  = 1
	defaultVideoLimit = 20
	videoCachePrefix  = "video:"
	minAPISecretLen   = 10
	secretPreviewLen  = 6
)

// VideoServiceConfig holds the video proxy settings
type VideoServiceConfig struct {
	BaseURL   string
	APISecret string
	CacheTTL  time.Duration
}

// VideoConfigCheck reports problems with the video API configuration
type VideoConfigCheck struct {
	IsValid bool              `json:"isValid"`
	Issues  []string          `json:"issues"`
	Config  VideoConfigDigest `json:"config"`
}

// VideoConfigDigest is the non-secret view of the video API configuration
type VideoConfigDigest struct {
	BaseURL          string `json:"baseUrl"`
	HasAPISecret     bool   `json:"hasApiSecret"`
	APISecretPreview string `json:"apiSecretPreview"`
}

// VideoService proxies the video API. Video metadata is read through the cache
// and invalidated on update and delete.
type VideoService struct {
	backend  core.VideoBackend
	cache    core.Cache[models.VideoInfo]
	config   VideoServiceConfig
	recorder core.Recorder
}

// NewVideoService creates the video proxy. cache may be nil to disable caching.
func NewVideoService(
	backend core.VideoBackend,
	cache core.Cache[models.VideoInfo],
	cfg VideoServiceConfig,
	recorder core.Recorder,
) *VideoService {
	if recorder == nil {
		recorder = metrics.NewNoopMetrics()
	}
	return &VideoService{
		backend:  backend,
		cache:    cache,
		config:   cfg,
		recorder: recorder,
	}
}

// ListVideos returns one page of videos; non-positive page or limit fall back to defaults
func (s *VideoService) ListVideos(ctx context.Context, page, limit int) (*models.VideoList, error) {
	if page < 1 {
		page = defaultVideoPage
	}
	if limit < 1 {
		limit = defaultVideoLimit
	}
	list, err := s.backend.ListVideos(ctx, page, limit)
	if err != nil {
		log.Printf("[Video] Error fetching video list: %v", err)
		return nil, err
	}
	return list, nil
}

// GetVideo returns video metadata, served from cache when possible
func (s *VideoService) GetVideo(ctx context.Context, videoID string) (*models.VideoInfo, error) {
	if s.cache == nil {
		return s.fetchVideo(ctx, videoID)
	}

	key := videoCachePrefix + videoID
	if info, err := s.cache.Get(ctx, key); err == nil {
		s.recorder.RecordVideoCacheLookup(true)
		return &info, nil
	}

	// Callers that join an in-flight fetch for the same key count as misses too
	info, err := s.cache.GetWithFetch(ctx, key, s.config.CacheTTL,
		func(ctx context.Context, _ string) (models.VideoInfo, error) {
			v, err := s.fetchVideo(ctx, videoID)
			if err != nil {
				return models.VideoInfo{}, err
			}
			return *v, nil
		})
	if err != nil {
		return nil, err
	}
	s.recorder.RecordVideoCacheLookup(false)
	return &info, nil
}

func (s *VideoService) fetchVideo(ctx context.Context, videoID string) (*models.VideoInfo, error) {
	info, err := s.backend.GetVideo(ctx, videoID)
	if err != nil {
		log.Printf("[Video] Error fetching video with ID %s: %v", videoID, err)
		return nil, err
	}
	return info, nil
}

// GenerateOTP issues a playback OTP; a missing ttl defaults to 300 seconds
func (s *VideoService) GenerateOTP(
	ctx context.Context,
	req models.PlaybackOTPRequest,
) (*models.PlaybackOTP, error) {
	if req.TTL <= 0 {
		req.TTL = models.DefaultPlaybackOTPTTL
	}
	otp, err := s.backend.GenerateOTP(ctx, req)
	if err != nil {
		log.Printf("[Video] Error generating OTP for video %s: %v", req.VideoID, err)
		return nil, err
	}
	return otp, nil
}

// UploadCredentials obtains upload parameters for a new video
func (s *VideoService) UploadCredentials(
	ctx context.Context,
	req models.VideoUploadRequest,
) (*models.UploadCredentials, error) {
	creds, err := s.backend.UploadCredentials(ctx, req)
	if err != nil {
		log.Printf("[Video] Error getting upload credentials: %v", err)
		return nil, err
	}
	return creds, nil
}

// UpdateVideo changes video metadata and drops the cached copy
func (s *VideoService) UpdateVideo(
	ctx context.Context,
	videoID string,
	req models.VideoUploadRequest,
) (*models.VideoInfo, error) {
	info, err := s.backend.UpdateVideo(ctx, videoID, req)
	if err != nil {
		log.Printf("[Video] Error updating video %s: %v", videoID, err)
		return nil, err
	}
	s.invalidate(ctx, videoID)
	return info, nil
}

// DeleteVideo removes a video and drops the cached copy
func (s *VideoService) DeleteVideo(ctx context.Context, videoID string) bool {
	ok, err := s.backend.DeleteVideo(ctx, videoID)
	if err != nil || !ok {
		return false
	}
	s.invalidate(ctx, videoID)
	return true
}

func (s *VideoService) invalidate(ctx context.Context, videoID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, videoCachePrefix+videoID); err != nil {
		log.Printf("[Video] Failed to invalidate cache for video %s: %v", videoID, err)
	}
}

// ConfigCheck validates the video API settings without calling the API
func (s *VideoService) ConfigCheck() VideoConfigCheck {
	issues := []string{}

	switch {
	case s.config.BaseURL == "":
		issues = append(issues, "BaseUrl is not configured")
	case !strings.HasPrefix(s.config.BaseURL, "https://"):
		issues = append(issues, "BaseUrl should use HTTPS")
	}

	switch {
	case s.config.APISecret == "":
		issues = append(issues, "ApiSecret is not configured")
	case len(s.config.APISecret) < minAPISecretLen:
		issues = append(issues, "ApiSecret seems too short")
	}

	preview := s.config.APISecret
	if len(preview) > secretPreviewLen {
		preview = preview[:secretPreviewLen]
	}

	return VideoConfigCheck{
		IsValid: len(issues) == 0,
		Issues:  issues,
		Config: VideoConfigDigest{
			BaseURL:          s.config.BaseURL,
			HasAPISecret:     s.config.APISecret != "",
			APISecretPreview: preview + "...",
		},
	}
}
