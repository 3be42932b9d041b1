package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/simulive/internal/config"
	"github.com/stwalsh4118/simulive/internal/schedule"
	"github.com/stwalsh4118/simulive/internal/webinar"
)

// jstTime builds an instant on a fixed date in the reference timezone
func jstTime(hour, minute, sec int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, sec, 0, schedule.ReferenceTimezone)
}

func setupWatchRouter(service *webinar.Service, clock clockwork.Clock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api")
	SetupWatchRoutes(apiGroup, service, clock, config.ClockSyncConfig{
		ResyncInterval:      30 * time.Second,
		DisplayTickInterval: time.Second,
	})
	return router
}

func TestWatchBootstrap(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()

	tenantRow := createTestTenant(t, repos)
	created := createTestWebinar(t, repos, tenantRow.UID) // 20:00, one hour

	t.Run("Mid-broadcast viewer gets on_air with seek offset", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(jstTime(20, 30, 0))
		router := setupWatchRouter(webinar.NewService(repos), clock)

		req := httptest.NewRequest("GET", fmt.Sprintf("/api/watch/%s", created.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

		var resp WatchResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)

		assert.Equal(t, created.ID.String(), resp.Webinar.ID)
		assert.Equal(t, "dQw4w9WgXcQ", resp.Webinar.YouTubeID)
		assert.Equal(t, schedule.StateOnAir, resp.Playback.State)
		assert.Equal(t, int64(1800), resp.Playback.SeekPositionSeconds)
		assert.Equal(t, jstTime(20, 30, 0).UnixMilli(), resp.ServerTime.Timestamp)
		assert.Equal(t, int64(30000), resp.Sync.ResyncIntervalMS)
		assert.Equal(t, int64(1000), resp.Sync.DisplayTickIntervalMS)
		assert.False(t, resp.Preview)
	})

	t.Run("Early viewer gets countdown", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(jstTime(19, 55, 0))
		router := setupWatchRouter(webinar.NewService(repos), clock)

		req := httptest.NewRequest("GET", fmt.Sprintf("/api/watch/%s", created.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp WatchResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, schedule.StateBefore, resp.Playback.State)
		assert.Equal(t, int64(300), resp.Playback.RemainingSeconds)
	})

	t.Run("Late viewer gets ended", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(jstTime(22, 0, 0))
		router := setupWatchRouter(webinar.NewService(repos), clock)

		req := httptest.NewRequest("GET", fmt.Sprintf("/api/watch/%s", created.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		var resp WatchResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, schedule.StateEnded, resp.Playback.State)
	})

	t.Run("Preview forces on_air from the top", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(jstTime(8, 0, 0))
		router := setupWatchRouter(webinar.NewService(repos), clock)

		req := httptest.NewRequest("GET", fmt.Sprintf("/api/watch/%s?preview=1", created.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		var resp WatchResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, schedule.StateOnAir, resp.Playback.State)
		assert.Equal(t, int64(0), resp.Playback.SeekPositionSeconds)
		assert.True(t, resp.Preview)
	})

	t.Run("Unknown webinar returns 404", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(jstTime(20, 30, 0))
		router := setupWatchRouter(webinar.NewService(repos), clock)

		req := httptest.NewRequest("GET", fmt.Sprintf("/api/watch/%s", uuid.New()), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed ID reported as not found", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(jstTime(20, 30, 0))
		router := setupWatchRouter(webinar.NewService(repos), clock)

		req := httptest.NewRequest("GET", "/api/watch/not-a-uuid", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmbedAllowsFraming(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()

	tenantRow := createTestTenant(t, repos)
	created := createTestWebinar(t, repos, tenantRow.UID)

	clock := clockwork.NewFakeClockAt(jstTime(20, 30, 0))
	router := setupWatchRouter(webinar.NewService(repos), clock)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/embed/%s", created.ID), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "frame-ancestors *")

	var resp WatchResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, schedule.StateOnAir, resp.Playback.State)
}
