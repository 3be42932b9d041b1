package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stwalsh4118/simulive/internal/config"
	"github.com/stwalsh4118/simulive/internal/logger"
	"github.com/stwalsh4118/simulive/internal/middleware"
	"github.com/stwalsh4118/simulive/internal/models"
	"github.com/stwalsh4118/simulive/internal/schedule"
	"github.com/stwalsh4118/simulive/internal/webinar"
)

// WatchWebinar is the viewer-visible subset of a webinar record. Tenant
// ownership and timestamps stay off the public surface.
type WatchWebinar struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	YouTubeID      string              `json:"youtube_id"`
	DurationSec    int64               `json:"duration_sec"`
	ScheduleTime   string              `json:"schedule_time"`
	CTA            *models.CTASettings `json:"cta,omitempty"`
	LoopProtection bool                `json:"loop_protection"`
	ThumbnailURL   *string             `json:"thumbnail_url,omitempty"`
}

// SyncSettings tells the viewer client how often to resync its clock offset
// and refresh the countdown display
type SyncSettings struct {
	ResyncIntervalMS      int64 `json:"resync_interval_ms"`
	DisplayTickIntervalMS int64 `json:"display_tick_interval_ms"`
}

// WatchResponse bootstraps a viewer session: the webinar, its playback state
// at the authoritative instant, and that instant itself so the client can
// seed its clock offset from the same response.
type WatchResponse struct {
	Webinar    WatchWebinar       `json:"webinar"`
	Playback   *schedule.Result   `json:"playback"`
	ServerTime ServerTimeResponse `json:"server_time"`
	Sync       SyncSettings       `json:"sync"`
	Preview    bool               `json:"preview"`
}

// WatchHandler handles viewer-facing watch and embed requests
type WatchHandler struct {
	service *webinar.Service
	clock   clockwork.Clock
	syncCfg config.ClockSyncConfig
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(service *webinar.Service, clock clockwork.Clock, syncCfg config.ClockSyncConfig) *WatchHandler {
	return &WatchHandler{service: service, clock: clock, syncCfg: syncCfg}
}

// Get handles GET /api/watch/:id and GET /api/embed/:id. A malformed ID is
// reported as not found rather than a validation error so the viewer surface
// leaks nothing about ID structure.
func (h *WatchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "webinar not found"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, webinar.ErrWebinarNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "webinar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load webinar"})
		return
	}

	now := h.clock.Now()
	preview := c.Query("preview") == "1" || c.Query("preview") == "true"

	result, err := schedule.Evaluate(now, found.ScheduleTime, found.DurationSec)
	if err != nil {
		// Records are validated on write, so this indicates corruption
		logger.Log.Error().
			Err(err).
			Str("webinar_id", id.String()).
			Msg("Stored webinar failed schedule evaluation")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to evaluate schedule"})
		return
	}

	if preview {
		// Preview sessions play from the top regardless of the schedule
		result = &schedule.Result{
			State:    schedule.StateOnAir,
			StartsAt: result.StartsAt,
			EndsAt:   result.EndsAt,
		}
	}

	c.JSON(http.StatusOK, WatchResponse{
		Webinar: WatchWebinar{
			ID:             found.ID.String(),
			Title:          found.Title,
			YouTubeID:      found.YouTubeID,
			DurationSec:    found.DurationSec,
			ScheduleTime:   found.ScheduleTime,
			CTA:            found.CTA(),
			LoopProtection: found.LoopProtection,
			ThumbnailURL:   found.ThumbnailURL,
		},
		Playback: result,
		ServerTime: ServerTimeResponse{
			ServerTime: now.UTC().Format(time.RFC3339Nano),
			Timestamp:  now.UTC().UnixMilli(),
		},
		Sync: SyncSettings{
			ResyncIntervalMS:      h.syncCfg.ResyncInterval.Milliseconds(),
			DisplayTickIntervalMS: h.syncCfg.DisplayTickInterval.Milliseconds(),
		},
		Preview: preview,
	})
}

// SetupWatchRoutes registers viewer-facing routes. Responses carry the
// authoritative time, so caching is disabled; the embed route additionally
// allows cross-origin framing.
func SetupWatchRoutes(apiGroup *gin.RouterGroup, service *webinar.Service, clock clockwork.Clock, syncCfg config.ClockSyncConfig) {
	handler := NewWatchHandler(service, clock, syncCfg)

	apiGroup.GET("/watch/:id", middleware.NoCache(), handler.Get)
	apiGroup.GET("/embed/:id", middleware.NoCache(), middleware.AllowFraming(), handler.Get)
}
