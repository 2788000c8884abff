package bootstrap

import (
	"context"
	"net/http"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                   *store.Store
	MetricsRecorder      metrics.Recorder
	MetricsCache         core.Cache[int64]
	MetricsCacheCloser   func() error
	CommCodeCache        core.Cache[[]models.CommCode]
	CommCodeCacheCloser  func() error
	RateLimitRedisClient *redis.Client

	// Authentication
	ProviderChain *auth.ProviderChain

	// Services
	AuditService    *services.AuditService
	UserService     *services.UserService
	CommCodeService *services.CommCodeService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{Config: cfg}
	ctx := context.Background()

	// Phase 1: Validate configuration
	validateAllConfiguration(cfg)

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, caches, and Redis
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	// Database
	app.DB, err = initializeDatabase(ctx, app.Config)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config)
	app.MetricsCache, app.MetricsCacheCloser, err = initializeMetricsCache(ctx, app.Config)
	if err != nil {
		return err
	}

	// Common code cache
	app.CommCodeCache, app.CommCodeCacheCloser, err = initializeCommCodeCache(
		ctx,
		app.Config,
		app.MetricsRecorder,
	)
	if err != nil {
		return err
	}

	// Redis (for rate limiting)
	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(ctx, app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up the provider chain and services
func (app *Application) initializeBusinessLayer() error {
	// Audit service (required by other services)
	app.AuditService = services.NewAuditService(
		app.DB,
		app.Config.EnableAuditLogging,
		app.Config.AuditLogBufferSize,
	)

	chain, err := initializeProviderChain(app.Config, app.DB)
	if err != nil {
		return err
	}
	app.ProviderChain = chain

	app.UserService, app.CommCodeService = initializeServices(
		app.Config,
		app.DB,
		app.ProviderChain,
		app.CommCodeCache,
		app.AuditService,
		app.MetricsRecorder,
	)
	return nil
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.UserService,
		app.CommCodeService,
		app.AuditService,
		app.MetricsRecorder,
	)

	router, err := setupRouter(
		app.Config,
		app.DB,
		app.CommCodeCache,
		app.HandlerSet,
		app.MetricsRecorder,
		app.AuditService,
		app.RateLimitRedisClient,
	)
	if err != nil {
		return err
	}
	app.Router = router
	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server)
	addAuditCleanupJob(m, app.Config, app.AuditService)
	addUserGaugeJob(m, app.Config, app.DB, app.MetricsRecorder, app.MetricsCache)

	// graceful runs shutdown jobs concurrently; one job keeps teardown ordered.
	m.AddShutdownJob(func() error {
		return runShutdown(app.shutdownSteps())
	})

	<-m.Done()
}
