package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/models"
	"github.com/go-authgate/authbridge/internal/services"
	"github.com/go-authgate/authbridge/internal/video"

	"github.com/gin-gonic/gin"
)

// VideoHandler exposes the video proxy over HTTP
type VideoHandler struct {
	videoService *services.VideoService
}

func NewVideoHandler(s *services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: s}
}

// List returns one page of videos (?page=&limit=)
func (h *VideoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.videoService.ListVideos(c.Request.Context(), page, limit)
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one video's metadata
func (h *VideoHandler) Get(c *gin.Context) {
	info, err := h.videoService.GetVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GenerateOTP issues a playback OTP
func (h *VideoHandler) GenerateOTP(c *gin.Context) {
	var req models.PlaybackOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	otp, err := h.videoService.GenerateOTP(c.Request.Context(), req)
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, otp)
}

// UploadCredentials obtains upload parameters for a new video
func (h *VideoHandler) UploadCredentials(c *gin.Context) {
	var req models.VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creds, err := h.videoService.UploadCredentials(c.Request.Context(), req)
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, creds)
}

// Update changes a video's metadata
func (h *VideoHandler) Update(c *gin.Context) {
	var req models.VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	info, err := h.videoService.UpdateVideo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Delete removes a video
func (h *VideoHandler) Delete(c *gin.Context) {
	if !h.videoService.DeleteVideo(c.Request.Context(), c.Param("id")) {
		respondError(c, http.StatusInternalServerError, core.KindTransportError, "Failed to delete video")
		return
	}
	c.Status(http.StatusOK)
}

// ConfigCheck reports problems with the video API configuration
func (h *VideoHandler) ConfigCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.videoService.ConfigCheck())
}

func respondVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, video.ErrVideoNotFound):
		respondError(c, http.StatusNotFound, core.KindBackendRejected, "Video not found")
	case errors.Is(err, video.ErrVideoAPIConnection):
		respondError(c, http.StatusBadGateway, core.KindTransportError, "Video API unavailable")
	default:
		respondError(c, http.StatusInternalServerError, core.ClassifyError(err), "Internal server error")
	}
}
