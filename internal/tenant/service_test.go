package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/simulive/internal/db"
	"github.com/stwalsh4118/simulive/internal/models"
)

func setupService(t *testing.T) (*Service, func()) {
	t.Helper()

	database, err := db.New(":memory:")
	require.NoError(t, err)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	err = db.RunMigrations(sqlDB, "file://../../migrations")
	require.NoError(t, err)

	cleanup := func() {
		_ = database.Close()
	}

	return NewService(db.NewRepositories(database)), cleanup
}

func TestCreateTenant(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	created, err := service.Create(ctx, "uid-1", "owner@example.com", "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, models.TenantStatusActive, created.Status)
	assert.False(t, created.IsAdmin)

	t.Run("Repeated create returns existing record", func(t *testing.T) {
		again, err := service.Create(ctx, "uid-1", "other@example.com", "Other Corp")
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", again.Email)
		assert.Equal(t, "Acme Corp", again.CompanyName)
	})
}

func TestGetByUID(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.Create(ctx, "uid-1", "owner@example.com", "Acme Corp")
	require.NoError(t, err)

	found, err := service.GetByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", found.CompanyName)

	_, err = service.GetByUID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestUpdateStatus(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.Create(ctx, "uid-1", "owner@example.com", "Acme Corp")
	require.NoError(t, err)

	t.Run("Suspend and reactivate", func(t *testing.T) {
		require.NoError(t, service.UpdateStatus(ctx, "uid-1", models.TenantStatusSuspended))

		found, err := service.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, models.TenantStatusSuspended, found.Status)

		require.NoError(t, service.UpdateStatus(ctx, "uid-1", models.TenantStatusActive))
	})

	t.Run("Invalid status rejected", func(t *testing.T) {
		err := service.UpdateStatus(ctx, "uid-1", "banished")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Unknown tenant returns not found", func(t *testing.T) {
		err := service.UpdateStatus(ctx, "nobody", models.TenantStatusActive)
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})
}

func TestList(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()

	for _, uid := range []string{"uid-1", "uid-2", "uid-3"} {
		_, err := service.Create(ctx, uid, uid+"@example.com", "Acme Corp")
		require.NoError(t, err)
	}

	tenants, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, 3)
}
