package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jmcferran/sightline/internal/api/handlers"
	feedHandlers "github.com/jmcferran/sightline/internal/api/handlers/feed"
	signalHandlers "github.com/jmcferran/sightline/internal/api/handlers/signals"
	"github.com/jmcferran/sightline/internal/api/middleware"
	"github.com/jmcferran/sightline/internal/infra/database/postgres"
	"github.com/jmcferran/sightline/internal/pkg/config"
	"github.com/jmcferran/sightline/internal/pkg/logger"
	rankingService "github.com/jmcferran/sightline/internal/service/ranking"
	signalsService "github.com/jmcferran/sightline/internal/service/signals"
)

// Router holds all dependencies for API routing
type Router struct {
	engine        *gin.Engine
	config        *config.Config
	dbPool        *postgres.Pool
	healthHandler *handlers.HealthHandler
	signalHandler *signalHandlers.Handler
	feedHandler   *feedHandlers.Handler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, dbPool *postgres.Pool, version string) *Router {
	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()

	// Create repositories
	signalRepo := postgres.NewSignalRepository(dbPool.Pool)
	sightingRepo := postgres.NewSightingRepository(dbPool.Pool)
	geofenceRepo := postgres.NewGeofenceRepository(dbPool.Pool)
	reputationRepo := postgres.NewReputationRepository(dbPool.Pool)
	preferenceRepo := postgres.NewPreferenceRepository(dbPool.Pool)

	// Create services
	evalService := signalsService.NewService(signalRepo, sightingRepo, geofenceRepo, reputationRepo)
	feedService := rankingService.NewService(signalRepo, geofenceRepo, preferenceRepo)

	// Create handlers
	healthHandler := handlers.NewHealthHandler(dbPool, version)
	signalHandler := signalHandlers.NewHandler(evalService, cfg.Feed.PreviewSightings, cfg.Feed.ThresholdSweepWindow)
	feedHandler := feedHandlers.NewHandler(feedService, cfg.Feed.DefaultLimit)

	router := &Router{
		engine:        engine,
		config:        cfg,
		dbPool:        dbPool,
		healthHandler: healthHandler,
		signalHandler: signalHandler,
		feedHandler:   feedHandler,
	}

	router.setupMiddlewares()
	router.setupRoutes()

	return router
}

// setupMiddlewares configures all global middlewares
func (r *Router) setupMiddlewares() {
	// Recovery middleware (must be first)
	r.engine.Use(middleware.Recovery())

	// Request ID middleware
	r.engine.Use(middleware.RequestID())

	// Logging middleware
	accessLogger := logger.NewAccessLogger(
		r.config.Logging.FilePath,
		r.config.Logging.RotationSize,
		r.config.Logging.RetentionDays,
	)
	r.engine.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health", "/health/ready"}, // Skip health checks to reduce noise
	}))

	// CORS middleware
	if r.config.Server.Mode == "debug" {
		r.engine.Use(middleware.CORS(middleware.DevelopmentCORSConfig()))
	} else {
		r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Health checks (no /api prefix)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Ready)

	// API routes
	api := r.engine.Group("/api")
	{
		// Detailed health check
		api.GET("/health/detailed", r.healthHandler.Detailed)

		v1 := api.Group("/v1")
		{
			// Sighting dispatch
			v1.POST("/sightings/:id/dispatch", r.signalHandler.Dispatch)

			// Signal evaluation and preview
			v1.POST("/signals/evaluate", r.signalHandler.Evaluate)
			v1.GET("/signals/:id/preview", r.signalHandler.Preview)
			v1.POST("/signals/sweep", r.signalHandler.Sweep)

			// Ranked feed
			v1.GET("/feed", r.feedHandler.Feed)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
