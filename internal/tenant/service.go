// Package tenant provides business logic for tenant account operations.
// Identity itself comes from an external auth provider; this service only
// maintains the local account record keyed by the provider UID.
package tenant

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/simulive/internal/db"
	"github.com/stwalsh4118/simulive/internal/logger"
	"github.com/stwalsh4118/simulive/internal/models"
)

// Service handles business logic for tenant operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new tenant service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{
		repos: repos,
	}
}

// Create registers a tenant record for an auth provider UID. Creating a
// tenant that already exists returns the existing record unchanged, so the
// operation is safe to repeat on every sign-in.
func (s *Service) Create(ctx context.Context, uid, email, companyName string) (*models.Tenant, error) {
	existing, err := s.repos.Tenants.GetByUID(ctx, uid)
	if err == nil {
		return existing, nil
	}
	if !db.IsNotFound(err) {
		logger.Log.Error().
			Err(err).
			Str("uid", uid).
			Msg("Failed to check for existing tenant")
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	tenant := models.NewTenant(uid, email, companyName)
	if err := s.repos.Tenants.Create(ctx, tenant); err != nil {
		logger.Log.Error().
			Err(err).
			Str("uid", uid).
			Msg("Failed to create tenant in database")
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	logger.Log.Info().
		Str("uid", tenant.UID).
		Str("company_name", tenant.CompanyName).
		Msg("Tenant created successfully")

	return tenant, nil
}

// GetByUID retrieves a tenant by its auth provider UID
func (s *Service) GetByUID(ctx context.Context, uid string) (*models.Tenant, error) {
	tenant, err := s.repos.Tenants.GetByUID(ctx, uid)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrTenantNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("uid", uid).
			Msg("Failed to get tenant by UID")
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}

// List retrieves all tenants
func (s *Service) List(ctx context.Context) ([]*models.Tenant, error) {
	tenants, err := s.repos.Tenants.List(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to list tenants")
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return tenants, nil
}

// UpdateStatus activates or suspends a tenant account
func (s *Service) UpdateStatus(ctx context.Context, uid, status string) error {
	if !models.IsValidTenantStatus(status) {
		return ErrInvalidStatus
	}

	if err := s.repos.Tenants.UpdateStatus(ctx, uid, status); err != nil {
		if db.IsNotFound(err) {
			return ErrTenantNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("uid", uid).
			Str("status", status).
			Msg("Failed to update tenant status")
		return fmt.Errorf("failed to update tenant status: %w", err)
	}

	logger.Log.Info().
		Str("uid", uid).
		Str("status", status).
		Msg("Tenant status updated")

	return nil
}
