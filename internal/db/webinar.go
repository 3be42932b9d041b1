package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/simulive/internal/models"
)

// WebinarRepository handles database operations for webinars
type WebinarRepository struct {
	db *DB
}

// NewWebinarRepository creates a new webinar repository
func NewWebinarRepository(db *DB) *WebinarRepository {
	return &WebinarRepository{db: db}
}

// Create inserts a new webinar into the database
func (r *WebinarRepository) Create(ctx context.Context, webinar *models.Webinar) error {
	result := r.db.WithContext(ctx).Create(webinar)
	if result.Error != nil {
		return fmt.Errorf("failed to create webinar: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a webinar by its UUID
func (r *WebinarRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Webinar, error) {
	var webinar models.Webinar
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&webinar)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &webinar, nil
}

// ListByTenant retrieves all webinars owned by a tenant, newest first
func (r *WebinarRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.Webinar, error) {
	var webinars []*models.Webinar
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&webinars)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list webinars: %w", MapGormError(result.Error))
	}
	return webinars, nil
}

// Update updates an existing webinar
func (r *WebinarRepository) Update(ctx context.Context, webinar *models.Webinar) error {
	webinar.UpdatedAt = time.Now().UTC()

	// Select all mutable columns explicitly so zero values and cleared CTA
	// fields are written too
	result := r.db.WithContext(ctx).
		Where("id = ?", webinar.ID.String()).
		Select("title", "youtube_id", "duration_sec", "schedule_time",
			"cta_show_time_sec", "cta_label", "cta_url",
			"loop_protection", "thumbnail_url", "updated_at").
		Updates(webinar)
	if result.Error != nil {
		return fmt.Errorf("failed to update webinar: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a webinar by its UUID
func (r *WebinarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.Webinar{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete webinar: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
