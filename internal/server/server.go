// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stwalsh4118/simulive/internal/api"
	"github.com/stwalsh4118/simulive/internal/config"
	"github.com/stwalsh4118/simulive/internal/db"
	"github.com/stwalsh4118/simulive/internal/logger"
	"github.com/stwalsh4118/simulive/internal/middleware"
	"github.com/stwalsh4118/simulive/internal/tenant"
	"github.com/stwalsh4118/simulive/internal/webinar"
	"github.com/stwalsh4118/simulive/internal/youtube"
)

// Server represents the HTTP server
type Server struct {
	config         *config.Config
	db             *db.DB
	repos          *db.Repositories
	webinarService *webinar.Service
	tenantService  *tenant.Service
	youtubeClient  *youtube.Client
	clock          clockwork.Clock
	router         *gin.Engine
	server         *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, database *db.DB) *Server {
	repos := db.NewRepositories(database)

	return &Server{
		config:         cfg,
		db:             database,
		repos:          repos,
		webinarService: webinar.NewService(repos),
		tenantService:  tenant.NewService(repos),
		youtubeClient:  youtube.NewClient(cfg.YouTube.APIKey),
		clock:          clockwork.NewRealClock(),
	}
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	// Set Gin mode based on log level
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create new Gin router
	s.router = gin.New()

	// Add middleware stack
	s.router.Use(middleware.RequestLogger()) // Custom zerolog request logger
	s.router.Use(gin.Recovery())             // Panic recovery
	s.router.Use(cors.Default())             // CORS support (allows all origins)

	// Create API route group
	apiGroup := s.router.Group("/api")

	// Register service routes
	api.SetupHealthRoutes(apiGroup, s.db)
	api.SetupServerTimeRoutes(apiGroup, s.clock)
	api.SetupWatchRoutes(apiGroup, s.webinarService, s.clock, s.config.ClockSync)
	api.SetupWebinarRoutes(apiGroup, s.webinarService, s.config.App.Domain)
	api.SetupTenantRoutes(apiGroup, s.tenantService)
	api.SetupVideoLookupRoutes(apiGroup, s.youtubeClient)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.setupRouter()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	// Check if server was started before attempting shutdown
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
