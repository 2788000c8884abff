package bootstrap

import (
	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
)

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	chain *auth.ProviderChain,
	commCodeCache core.Cache[[]models.CommCode],
	auditService *services.AuditService,
	prometheusMetrics metrics.Recorder,
) (*services.UserService, *services.CommCodeService) {
	userService := services.NewUserService(db, chain, auditService, prometheusMetrics)
	commCodeService := services.NewCommCodeService(
		db,
		commCodeCache,
		cfg.CommCodeCacheTTL,
		prometheusMetrics,
	)
	return userService, commCodeService
}
