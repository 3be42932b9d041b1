package models

import (
	"time"

	"github.com/google/uuid"
)

// CTASettings describes the call-to-action banner shown to viewers once the
// configured number of seconds of playback has elapsed.
type CTASettings struct {
	ShowTimeSec int64  `json:"show_time_sec"`
	Label       string `json:"label"`
	URL         string `json:"url"`
}

// Webinar represents a pre-recorded video presented to viewers as a daily
// recurring live broadcast. ScheduleTime is a wall-clock time of day in
// "HH:mm" form, interpreted in the fixed reference timezone.
type Webinar struct {
	ID             uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	TenantID       string    `json:"tenant_id" gorm:"type:text;not null;index;column:tenant_id" validate:"required"`
	Title          string    `json:"title" gorm:"type:text;not null;column:title" validate:"required,min=1,max=255"`
	YouTubeID      string    `json:"youtube_id" gorm:"type:text;not null;column:youtube_id" validate:"required"`
	DurationSec    int64     `json:"duration_sec" gorm:"type:integer;not null;column:duration_sec" validate:"required,gt=0"`
	ScheduleTime   string    `json:"schedule_time" gorm:"type:text;not null;column:schedule_time" validate:"required"`
	CTAShowTimeSec *int64    `json:"cta_show_time_sec,omitempty" gorm:"type:integer;column:cta_show_time_sec"`
	CTALabel       *string   `json:"cta_label,omitempty" gorm:"type:text;column:cta_label"`
	CTAURL         *string   `json:"cta_url,omitempty" gorm:"type:text;column:cta_url"`
	LoopProtection bool      `json:"loop_protection" gorm:"type:integer;not null;default:0;column:loop_protection"`
	ThumbnailURL   *string   `json:"thumbnail_url,omitempty" gorm:"type:text;column:thumbnail_url"`
	CreatedAt      time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewWebinar creates a new Webinar with generated UUID and timestamps
func NewWebinar(tenantID, title, youtubeID string, durationSec int64, scheduleTime string) *Webinar {
	now := time.Now().UTC()
	return &Webinar{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Title:        title,
		YouTubeID:    youtubeID,
		DurationSec:  durationSec,
		ScheduleTime: scheduleTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CTA returns the webinar's call-to-action settings, or nil when no CTA is
// configured. A CTA requires all three fields to be present.
func (w *Webinar) CTA() *CTASettings {
	if w.CTAShowTimeSec == nil || w.CTALabel == nil || w.CTAURL == nil {
		return nil
	}
	return &CTASettings{
		ShowTimeSec: *w.CTAShowTimeSec,
		Label:       *w.CTALabel,
		URL:         *w.CTAURL,
	}
}

// SetCTA stores the given call-to-action settings on the webinar record.
// Passing nil clears any configured CTA.
func (w *Webinar) SetCTA(cta *CTASettings) {
	if cta == nil {
		w.CTAShowTimeSec = nil
		w.CTALabel = nil
		w.CTAURL = nil
		return
	}
	showTime := cta.ShowTimeSec
	label := cta.Label
	url := cta.URL
	w.CTAShowTimeSec = &showTime
	w.CTALabel = &label
	w.CTAURL = &url
}
