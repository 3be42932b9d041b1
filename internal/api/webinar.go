package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stwalsh4118/simulive/internal/db"
	"github.com/stwalsh4118/simulive/internal/models"
	"github.com/stwalsh4118/simulive/internal/webinar"
	"github.com/stwalsh4118/simulive/internal/youtube"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DeleteResponse represents a successful deletion
type DeleteResponse struct {
	Message string `json:"message"`
}

// CTARequest carries call-to-action settings on create and update requests
type CTARequest struct {
	ShowTimeSec int64  `json:"show_time_sec" binding:"min=0"`
	Label       string `json:"label" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
}

// CreateWebinarRequest represents a request to register a webinar. The video
// may be given as a full YouTube URL or a bare video ID.
type CreateWebinarRequest struct {
	TenantID       string      `json:"tenant_id" binding:"required"`
	Title          string      `json:"title" binding:"required,max=255"`
	YouTubeURL     string      `json:"youtube_url" binding:"required"`
	DurationSec    int64       `json:"duration_sec" binding:"required,gt=0"`
	ScheduleTime   string      `json:"schedule_time" binding:"required"`
	CTA            *CTARequest `json:"cta,omitempty"`
	LoopProtection bool        `json:"loop_protection"`
	ThumbnailURL   *string     `json:"thumbnail_url,omitempty"`
}

// UpdateWebinarRequest represents a full replacement of a webinar's mutable
// fields. Omitting the CTA clears any configured call-to-action.
type UpdateWebinarRequest struct {
	Title          string      `json:"title" binding:"required,max=255"`
	YouTubeURL     string      `json:"youtube_url" binding:"required"`
	DurationSec    int64       `json:"duration_sec" binding:"required,gt=0"`
	ScheduleTime   string      `json:"schedule_time" binding:"required"`
	CTA            *CTARequest `json:"cta,omitempty"`
	LoopProtection bool        `json:"loop_protection"`
	ThumbnailURL   *string     `json:"thumbnail_url,omitempty"`
}

// WebinarResponse represents a webinar in dashboard API responses
type WebinarResponse struct {
	ID             string              `json:"id"`
	TenantID       string              `json:"tenant_id"`
	Title          string              `json:"title"`
	YouTubeID      string              `json:"youtube_id"`
	DurationSec    int64               `json:"duration_sec"`
	ScheduleTime   string              `json:"schedule_time"`
	CTA            *models.CTASettings `json:"cta,omitempty"`
	LoopProtection bool                `json:"loop_protection"`
	ThumbnailURL   *string             `json:"thumbnail_url,omitempty"`
	WatchURL       string              `json:"watch_url"`
	EmbedURL       string              `json:"embed_url"`
	EmbedCode      string              `json:"embed_code"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// WebinarHandler handles webinar management requests
type WebinarHandler struct {
	service *webinar.Service
	domain  string
}

// NewWebinarHandler creates a new webinar handler
func NewWebinarHandler(service *webinar.Service, domain string) *WebinarHandler {
	return &WebinarHandler{service: service, domain: domain}
}

func (h *WebinarHandler) toResponse(w *models.Webinar) WebinarResponse {
	return WebinarResponse{
		ID:             w.ID.String(),
		TenantID:       w.TenantID,
		Title:          w.Title,
		YouTubeID:      w.YouTubeID,
		DurationSec:    w.DurationSec,
		ScheduleTime:   w.ScheduleTime,
		CTA:            w.CTA(),
		LoopProtection: w.LoopProtection,
		ThumbnailURL:   w.ThumbnailURL,
		WatchURL:       webinar.WatchURL(w.ID, h.domain),
		EmbedURL:       webinar.EmbedURL(w.ID, h.domain),
		EmbedCode:      webinar.EmbedCode(w.ID, h.domain),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func ctaFromRequest(req *CTARequest) *models.CTASettings {
	if req == nil {
		return nil
	}
	return &models.CTASettings{
		ShowTimeSec: req.ShowTimeSec,
		Label:       req.Label,
		URL:         req.URL,
	}
}

// Create handles POST /api/webinars
func (h *WebinarHandler) Create(c *gin.Context) {
	var req CreateWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	videoID := youtube.ExtractVideoID(req.YouTubeURL)
	if videoID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "youtube_url is not a recognized YouTube URL or video ID"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), webinar.CreateParams{
		TenantID:       req.TenantID,
		Title:          req.Title,
		YouTubeID:      videoID,
		DurationSec:    req.DurationSec,
		ScheduleTime:   req.ScheduleTime,
		CTA:            ctaFromRequest(req.CTA),
		LoopProtection: req.LoopProtection,
		ThumbnailURL:   req.ThumbnailURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, webinar.ErrInvalidScheduleTime),
			errors.Is(err, webinar.ErrInvalidDuration),
			errors.Is(err, webinar.ErrInvalidCTA):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, db.ErrForeignKey):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tenant does not exist"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create webinar"})
		}
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(created))
}

// List handles GET /api/webinars?tenant_id=...
func (h *WebinarHandler) List(c *gin.Context) {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tenant_id query parameter is required"})
		return
	}

	webinars, err := h.service.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list webinars"})
		return
	}

	responses := make([]WebinarResponse, 0, len(webinars))
	for _, w := range webinars {
		responses = append(responses, h.toResponse(w))
	}

	c.JSON(http.StatusOK, responses)
}

// Get handles GET /api/webinars/:id
func (h *WebinarHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid webinar ID"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, webinar.ErrWebinarNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "webinar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get webinar"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(found))
}

// Update handles PUT /api/webinars/:id
func (h *WebinarHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid webinar ID"})
		return
	}

	var req UpdateWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	videoID := youtube.ExtractVideoID(req.YouTubeURL)
	if videoID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "youtube_url is not a recognized YouTube URL or video ID"})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, webinar.ErrWebinarNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "webinar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get webinar"})
		return
	}

	existing.Title = req.Title
	existing.YouTubeID = videoID
	existing.DurationSec = req.DurationSec
	existing.ScheduleTime = req.ScheduleTime
	existing.SetCTA(ctaFromRequest(req.CTA))
	existing.LoopProtection = req.LoopProtection
	existing.ThumbnailURL = req.ThumbnailURL

	if err := h.service.Update(c.Request.Context(), existing); err != nil {
		switch {
		case errors.Is(err, webinar.ErrInvalidScheduleTime),
			errors.Is(err, webinar.ErrInvalidDuration),
			errors.Is(err, webinar.ErrInvalidCTA):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update webinar"})
		}
		return
	}

	c.JSON(http.StatusOK, h.toResponse(existing))
}

// Delete handles DELETE /api/webinars/:id
func (h *WebinarHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid webinar ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, webinar.ErrWebinarNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "webinar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete webinar"})
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Message: "webinar deleted"})
}

// SetupWebinarRoutes registers webinar management routes
func SetupWebinarRoutes(apiGroup *gin.RouterGroup, service *webinar.Service, domain string) {
	handler := NewWebinarHandler(service, domain)

	apiGroup.POST("/webinars", handler.Create)
	apiGroup.GET("/webinars", handler.List)
	apiGroup.GET("/webinars/:id", handler.Get)
	apiGroup.PUT("/webinars/:id", handler.Update)
	apiGroup.DELETE("/webinars/:id", handler.Delete)
}
