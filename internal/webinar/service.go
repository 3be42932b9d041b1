// Package webinar provides business logic for webinar management.
// Schedule validation happens here, at the data-entry boundary; the schedule
// evaluator downstream assumes records are well-formed.
package webinar

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stwalsh4118/simulive/internal/db"
	"github.com/stwalsh4118/simulive/internal/logger"
	"github.com/stwalsh4118/simulive/internal/models"
	"github.com/stwalsh4118/simulive/internal/schedule"
)

// Service handles business logic for webinar operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new webinar service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{
		repos: repos,
	}
}

// CreateParams carries the fields accepted when creating or updating a webinar
type CreateParams struct {
	TenantID       string
	Title          string
	YouTubeID      string
	DurationSec    int64
	ScheduleTime   string
	CTA            *models.CTASettings
	LoopProtection bool
	ThumbnailURL   *string
}

// Create validates and persists a new webinar
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Webinar, error) {
	if err := validateSchedule(params.ScheduleTime, params.DurationSec); err != nil {
		logger.Log.Warn().
			Str("schedule_time", params.ScheduleTime).
			Int64("duration_sec", params.DurationSec).
			Msg("Webinar creation failed: invalid schedule")
		return nil, fmt.Errorf("failed to create webinar: %w", err)
	}

	if err := validateCTA(params.CTA, params.DurationSec); err != nil {
		logger.Log.Warn().
			Str("tenant_id", params.TenantID).
			Msg("Webinar creation failed: invalid CTA settings")
		return nil, fmt.Errorf("failed to create webinar: %w", err)
	}

	webinar := models.NewWebinar(params.TenantID, params.Title, params.YouTubeID, params.DurationSec, params.ScheduleTime)
	webinar.SetCTA(params.CTA)
	webinar.LoopProtection = params.LoopProtection
	webinar.ThumbnailURL = params.ThumbnailURL

	if err := s.repos.Webinars.Create(ctx, webinar); err != nil {
		logger.Log.Error().
			Err(err).
			Str("tenant_id", params.TenantID).
			Msg("Failed to create webinar in database")
		return nil, fmt.Errorf("failed to create webinar: %w", err)
	}

	logger.Log.Info().
		Str("webinar_id", webinar.ID.String()).
		Str("tenant_id", webinar.TenantID).
		Str("schedule_time", webinar.ScheduleTime).
		Msg("Webinar created successfully")

	return webinar, nil
}

// GetByID retrieves a webinar by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Webinar, error) {
	webinar, err := s.repos.Webinars.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrWebinarNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("webinar_id", id.String()).
			Msg("Failed to get webinar by ID")
		return nil, fmt.Errorf("failed to get webinar: %w", err)
	}

	return webinar, nil
}

// ListByTenant retrieves all webinars owned by a tenant
func (s *Service) ListByTenant(ctx context.Context, tenantID string) ([]*models.Webinar, error) {
	webinars, err := s.repos.Webinars.ListByTenant(ctx, tenantID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("tenant_id", tenantID).
			Msg("Failed to list webinars")
		return nil, fmt.Errorf("failed to list webinars: %w", err)
	}

	return webinars, nil
}

// Update validates and persists changes to an existing webinar
func (s *Service) Update(ctx context.Context, webinar *models.Webinar) error {
	if _, err := s.GetByID(ctx, webinar.ID); err != nil {
		return err
	}

	if err := validateSchedule(webinar.ScheduleTime, webinar.DurationSec); err != nil {
		logger.Log.Warn().
			Str("webinar_id", webinar.ID.String()).
			Str("schedule_time", webinar.ScheduleTime).
			Msg("Webinar update failed: invalid schedule")
		return fmt.Errorf("failed to update webinar: %w", err)
	}

	if err := validateCTA(webinar.CTA(), webinar.DurationSec); err != nil {
		logger.Log.Warn().
			Str("webinar_id", webinar.ID.String()).
			Msg("Webinar update failed: invalid CTA settings")
		return fmt.Errorf("failed to update webinar: %w", err)
	}

	if err := s.repos.Webinars.Update(ctx, webinar); err != nil {
		logger.Log.Error().
			Err(err).
			Str("webinar_id", webinar.ID.String()).
			Msg("Failed to update webinar in database")
		return fmt.Errorf("failed to update webinar: %w", err)
	}

	logger.Log.Info().
		Str("webinar_id", webinar.ID.String()).
		Msg("Webinar updated successfully")

	return nil
}

// Delete deletes a webinar by its ID
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repos.Webinars.Delete(ctx, id); err != nil {
		logger.Log.Error().
			Err(err).
			Str("webinar_id", id.String()).
			Msg("Failed to delete webinar from database")
		return fmt.Errorf("failed to delete webinar: %w", err)
	}

	logger.Log.Info().
		Str("webinar_id", id.String()).
		Msg("Webinar deleted successfully")

	return nil
}

// validateSchedule checks the daily start time and duration at the
// data-entry boundary
func validateSchedule(scheduleTime string, durationSec int64) error {
	if _, _, err := schedule.ParseClock(scheduleTime); err != nil {
		return ErrInvalidScheduleTime
	}
	if durationSec <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// validateCTA checks call-to-action settings. A nil CTA is valid; a present
// one needs a label, a URL, and a show time inside the broadcast window.
func validateCTA(cta *models.CTASettings, durationSec int64) error {
	if cta == nil {
		return nil
	}
	if cta.Label == "" || cta.URL == "" {
		return ErrInvalidCTA
	}
	if cta.ShowTimeSec < 0 || cta.ShowTimeSec >= durationSec {
		return ErrInvalidCTA
	}
	return nil
}
