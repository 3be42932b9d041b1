package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stwalsh4118/simulive/internal/middleware"
)

// ServerTimeResponse is the authoritative time payload viewers sync against.
// Field names are part of the wire contract with the player client.
type ServerTimeResponse struct {
	ServerTime string `json:"serverTime"`
	Timestamp  int64  `json:"timestamp"` // milliseconds since epoch
}

// ServerTimeHandler serves the authoritative clock
type ServerTimeHandler struct {
	clock clockwork.Clock
}

// NewServerTimeHandler creates a new server time handler
func NewServerTimeHandler(clock clockwork.Clock) *ServerTimeHandler {
	return &ServerTimeHandler{clock: clock}
}

// Get handles GET /api/server-time
func (h *ServerTimeHandler) Get(c *gin.Context) {
	now := h.clock.Now().UTC()

	c.JSON(http.StatusOK, ServerTimeResponse{
		ServerTime: now.Format(time.RFC3339Nano),
		Timestamp:  now.UnixMilli(),
	})
}

// SetupServerTimeRoutes registers the authoritative time route. The NoCache
// middleware is load-bearing here: a cached response would corrupt every
// clock offset derived from it.
func SetupServerTimeRoutes(apiGroup *gin.RouterGroup, clock clockwork.Clock) {
	handler := NewServerTimeHandler(clock)
	apiGroup.GET("/server-time", middleware.NoCache(), handler.Get)
}
