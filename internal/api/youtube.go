package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/simulive/internal/youtube"
)

// VideoLookupRequest represents a request to resolve video metadata from a
// YouTube URL or bare video ID
type VideoLookupRequest struct {
	URL string `json:"url" binding:"required"`
}

// VideoLookupResponse represents resolved video metadata
type VideoLookupResponse struct {
	VideoID string `json:"video_id"`
	*youtube.VideoInfo
}

// VideoLookupHandler handles video metadata lookups for the dashboard's
// webinar registration form
type VideoLookupHandler struct {
	client *youtube.Client
}

// NewVideoLookupHandler creates a new video lookup handler
func NewVideoLookupHandler(client *youtube.Client) *VideoLookupHandler {
	return &VideoLookupHandler{client: client}
}

// Lookup handles POST /api/youtube/lookup
func (h *VideoLookupHandler) Lookup(c *gin.Context) {
	var req VideoLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	videoID := youtube.ExtractVideoID(req.URL)
	if videoID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "url is not a recognized YouTube URL or video ID"})
		return
	}

	info, err := h.client.Lookup(c.Request.Context(), videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "video not found"})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to fetch video info"})
		return
	}

	c.JSON(http.StatusOK, VideoLookupResponse{VideoID: videoID, VideoInfo: info})
}

// SetupVideoLookupRoutes registers video metadata routes
func SetupVideoLookupRoutes(apiGroup *gin.RouterGroup, client *youtube.Client) {
	handler := NewVideoLookupHandler(client)

	apiGroup.POST("/youtube/lookup", handler.Lookup)
}
