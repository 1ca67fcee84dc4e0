package models

import "time"

// VideoInfo is a video as reported by the video backend
type VideoInfo struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Length       int64             `json:"length"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	ThumbnailURL string            `json:"thumbnailUrl"`
	Tags         map[string]string `json:"tags"`
}

// VideoList is one page of videos
type VideoList struct {
	Videos     []VideoInfo `json:"videos"`
	TotalCount int         `json:"totalCount"`
	Page       int         `json:"page"`
	HasNext    bool        `json:"hasNext"`
}

// DefaultPlaybackOTPTTL is used when an OTP request does not set a ttl (seconds)
const DefaultPlaybackOTPTTL = 300

// PlaybackOTPRequest asks for a playback OTP for one video
type PlaybackOTPRequest struct {
	VideoID string `json:"videoId" binding:"required"`
	TTL     int    `json:"ttl"`
}

// PlaybackOTP is the playback authorization returned by the video backend
type PlaybackOTP struct {
	OTP          string `json:"otp"`
	PlaybackInfo string `json:"playbackInfo"`
}

// VideoUploadRequest carries metadata for a new or updated video
type VideoUploadRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        map[string]string `json:"tags"`
	FolderID    string            `json:"folderId,omitempty"`
}

// UploadCredentials are the pre-signed upload parameters for a new video
type UploadCredentials struct {
	VideoID        string `json:"videoId"`
	ClientPayload  string `json:"clientPayload"`
	Policy         string `json:"policy"`
	Key            string `json:"key"`
	XAmzCredential string `json:"xAmzCredential"`
	XAmzAlgorithm  string `json:"xAmzAlgorithm"`
	XAmzDate       string `json:"xAmzDate"`
	XAmzSignature  string `json:"xAmzSignature"`
	UploadLink     string `json:"uploadLink"`
}
