//go:build integration
// +build integration

package integration

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/simulive/internal/api"
	"github.com/stwalsh4118/simulive/internal/config"
	"github.com/stwalsh4118/simulive/internal/db"
	"github.com/stwalsh4118/simulive/internal/tenant"
	"github.com/stwalsh4118/simulive/internal/webinar"
)

const testDomain = "webinars.example.com"

// setupTestDB creates an in-memory test database with migrations applied
func setupTestDB(t *testing.T) (*db.DB, *db.Repositories, func()) {
	t.Helper()

	database, err := db.New(":memory:")
	require.NoError(t, err, "Failed to create in-memory database")

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err, "Failed to get SQL DB")

	// Get absolute path to migrations directory relative to this file
	// This ensures tests work regardless of working directory
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "Failed to get current file path")

	testDir := filepath.Dir(filename)                     // test/integration
	rootDir := filepath.Dir(filepath.Dir(testDir))        // repo root
	migrationsDir := filepath.Join(rootDir, "migrations") // migrations
	migrationsPath := "file://" + migrationsDir

	err = db.RunMigrations(sqlDB, migrationsPath)
	require.NoError(t, err, "Failed to run migrations")

	repos := db.NewRepositories(database)

	cleanup := func() {
		_ = database.Close()
	}

	return database, repos, cleanup
}

// setupTestRouter wires the full API surface against the given repositories
// and clock, mirroring the production router minus logging middleware
func setupTestRouter(repos *db.Repositories, clock clockwork.Clock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	webinarService := webinar.NewService(repos)
	tenantService := tenant.NewService(repos)

	apiGroup := router.Group("/api")
	api.SetupServerTimeRoutes(apiGroup, clock)
	api.SetupWatchRoutes(apiGroup, webinarService, clock, config.ClockSyncConfig{
		ResyncInterval:      30 * time.Second,
		DisplayTickInterval: time.Second,
	})
	api.SetupWebinarRoutes(apiGroup, webinarService, testDomain)
	api.SetupTenantRoutes(apiGroup, tenantService)

	return router
}
