// Package db provides database connection management and repository interfaces.
package db

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/simulive/internal/models"
)

// TenantRepository handles database operations for tenants
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a new tenant into the database
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	result := r.db.WithContext(ctx).Create(tenant)
	if result.Error != nil {
		return fmt.Errorf("failed to create tenant: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByUID retrieves a tenant by its auth provider UID
func (r *TenantRepository) GetByUID(ctx context.Context, uid string) (*models.Tenant, error) {
	var tenant models.Tenant
	result := r.db.WithContext(ctx).Where("uid = ?", uid).First(&tenant)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &tenant, nil
}

// List retrieves all tenants ordered by creation date (newest first)
func (r *TenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&tenants)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", MapGormError(result.Error))
	}
	return tenants, nil
}

// UpdateStatus sets the status column for a tenant
func (r *TenantRepository) UpdateStatus(ctx context.Context, uid, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("uid = ?", uid).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update tenant status: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
