//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/simulive/internal/api"
	"github.com/stwalsh4118/simulive/internal/schedule"
)

// TestViewerJourney exercises the full lifecycle: a tenant signs up,
// registers a webinar, and viewers arriving at different times see the
// countdown, the mid-stream broadcast, and the end screen.
func TestViewerJourney(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()

	// Fixed instant well before the 20:00 broadcast
	clock := clockwork.NewFakeClockAt(
		time.Date(2026, 3, 14, 9, 0, 0, 0, schedule.ReferenceTimezone))
	router := setupTestRouter(repos, clock)

	doJSON := func(method, path string, payload any) *httptest.ResponseRecorder {
		t.Helper()
		var body *bytes.Buffer
		if payload != nil {
			raw, err := json.Marshal(payload)
			require.NoError(t, err)
			body = bytes.NewBuffer(raw)
		} else {
			body = bytes.NewBuffer(nil)
		}
		req := httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Tenant signs up
	w := doJSON("POST", "/api/tenants", api.CreateTenantRequest{
		UID:         "firebase-uid-1",
		Email:       "owner@example.com",
		CompanyName: "Acme Corp",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Tenant registers a one hour webinar at 20:00 with a CTA at minute five
	w = doJSON("POST", "/api/webinars", api.CreateWebinarRequest{
		TenantID:     "firebase-uid-1",
		Title:        "Product Launch",
		YouTubeURL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		DurationSec:  3600,
		ScheduleTime: "20:00",
		CTA: &api.CTARequest{
			ShowTimeSec: 300,
			Label:       "Sign up now",
			URL:         "https://example.com/signup",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created api.WebinarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	watchPath := fmt.Sprintf("/api/watch/%s", created.ID)

	// Morning visitor sees a countdown
	w = doJSON("GET", watchPath, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var bootstrap api.WatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bootstrap))
	assert.Equal(t, schedule.StateBefore, bootstrap.Playback.State)
	assert.Equal(t, int64(11*3600), bootstrap.Playback.RemainingSeconds)

	// The same visitor returns 30 minutes into the broadcast
	clock.Advance(11*time.Hour + 30*time.Minute)

	w = doJSON("GET", watchPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bootstrap))
	assert.Equal(t, schedule.StateOnAir, bootstrap.Playback.State)
	assert.Equal(t, int64(1800), bootstrap.Playback.SeekPositionSeconds)
	require.NotNil(t, bootstrap.Webinar.CTA)
	assert.Equal(t, int64(300), bootstrap.Webinar.CTA.ShowTimeSec)

	// The authoritative time endpoint agrees with the bootstrap timestamp
	w = doJSON("GET", "/api/server-time", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var serverTime api.ServerTimeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &serverTime))
	assert.Equal(t, bootstrap.ServerTime.Timestamp, serverTime.Timestamp)

	// After the broadcast window the state is ended
	clock.Advance(time.Hour)

	w = doJSON("GET", watchPath, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bootstrap))
	assert.Equal(t, schedule.StateEnded, bootstrap.Playback.State)

	// Preview mode still plays from the top for the owner
	w = doJSON("GET", watchPath+"?preview=1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bootstrap))
	assert.Equal(t, schedule.StateOnAir, bootstrap.Playback.State)
	assert.Equal(t, int64(0), bootstrap.Playback.SeekPositionSeconds)

	// Rescheduling moves the next day's window
	w = doJSON("PUT", fmt.Sprintf("/api/webinars/%s", created.ID), api.UpdateWebinarRequest{
		Title:        created.Title,
		YouTubeURL:   created.YouTubeID,
		DurationSec:  created.DurationSec,
		ScheduleTime: "22:30",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON("GET", watchPath, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bootstrap))
	assert.Equal(t, schedule.StateBefore, bootstrap.Playback.State)
	assert.Equal(t, "22:30", bootstrap.Webinar.ScheduleTime)

	// Deleting the webinar removes the viewer surface
	w = doJSON("DELETE", fmt.Sprintf("/api/webinars/%s", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON("GET", watchPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
