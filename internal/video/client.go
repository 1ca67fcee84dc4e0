package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/metrics"
	"github.com/go-authgate/authbridge/internal/models"

	retry "github.com/appleboy/go-httpretry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	backendName    = "video"
	maxBodyPreview = 200
)

// AuthHeaderValue is the Authorization header value the video API expects
func AuthHeaderValue(secret string) string {
	return "Apisecret " + secret
}

var _ core.VideoBackend = (*Client)(nil)

// Client is a VdoCipher-compatible video API client.
// The Apisecret Authorization header is attached by the underlying HTTP client.
type Client struct {
	baseURL  string
	client   *retry.Client
	recorder core.Recorder
	tracer   trace.Tracer
}

// NewClient creates a video API client rooted at baseURL
func NewClient(baseURL string, retryClient *retry.Client, recorder core.Recorder) *Client {
	if recorder == nil {
		recorder = metrics.NewNoopMetrics()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   retryClient,
		recorder: recorder,
		tracer:   otel.Tracer("github.com/go-authgate/authbridge/internal/video"),
	}
}

// ListVideos returns one page of videos
func (c *Client) ListVideos(ctx context.Context, page, limit int) (*models.VideoList, error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var list models.VideoList
	if err := c.do(ctx, "list_videos", http.MethodGet, "/videos", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetVideo returns a single video
func (c *Client) GetVideo(ctx context.Context, videoID string) (*models.VideoInfo, error) {
	var info models.VideoInfo
	if err := c.do(ctx, "get_video", http.MethodGet, videoPath(videoID), nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GenerateOTP issues a playback OTP for a video
func (c *Client) GenerateOTP(
	ctx context.Context,
	req models.PlaybackOTPRequest,
) (*models.PlaybackOTP, error) {
	ttl := req.TTL
	if ttl <= 0 {
		ttl = models.DefaultPlaybackOTPTTL
	}
	var otp models.PlaybackOTP
	err := c.do(ctx, "generate_otp", http.MethodPost, videoPath(req.VideoID)+"/otp", nil,
		map[string]int{"ttl": ttl}, &otp)
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// UploadCredentials obtains pre-signed upload parameters for a new video
func (c *Client) UploadCredentials(
	ctx context.Context,
	req models.VideoUploadRequest,
) (*models.UploadCredentials, error) {
	var creds models.UploadCredentials
	if err := c.do(ctx, "upload_credentials", http.MethodPut, "/videos", nil, req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// UpdateVideo changes a video's metadata
func (c *Client) UpdateVideo(
	ctx context.Context,
	videoID string,
	req models.VideoUploadRequest,
) (*models.VideoInfo, error) {
	var info models.VideoInfo
	if err := c.do(ctx, "update_video", http.MethodPost, videoPath(videoID), nil, req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteVideo removes a video. Any non-2xx answer or transport failure yields false.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) (bool, error) {
	if err := c.do(ctx, "delete_video", http.MethodDelete, videoPath(videoID), nil, nil, nil); err != nil {
		log.Printf("[Video] Failed to delete video %s: %v", videoID, err)
		return false, err
	}
	return true, nil
}

func videoPath(videoID string) string {
	return "/videos/" + url.PathEscape(videoID)
}

func (c *Client) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	body any,
	out any,
) (err error) {
	ctx, span := c.tracer.Start(ctx, "video."+op, trace.WithAttributes(
		attribute.String("http.request.method", method),
	))
	start := time.Now()
	defer func() {
		c.recorder.RecordExternalAPICall(backendName, op, time.Since(start), err == nil)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, op+" failed")
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVideoAPIConnection, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		// Exhausted retries on 429/5xx still return the last answer
		var retryErr *retry.RetryError
		if resp == nil || !errors.As(err, &retryErr) {
			return fmt.Errorf("%w: %v", ErrVideoAPIConnection, err)
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response", ErrVideoAPIInvalidResp)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrVideoNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyPreview := string(respBody)
		if len(bodyPreview) > maxBodyPreview {
			bodyPreview = bodyPreview[:maxBodyPreview] + "..."
		}
		return fmt.Errorf("%w: HTTP %d - %s", ErrVideoAPIInvalidResp, resp.StatusCode, bodyPreview)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrVideoAPIInvalidResp, err)
	}
	return nil
}
