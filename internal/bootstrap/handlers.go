package bootstrap

import (
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/handlers"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth     *handlers.AuthHandler
	commCode *handlers.CommCodeHandler
	audit    *handlers.AuditHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	userService *services.UserService,
	commCodeService *services.CommCodeService,
	auditService *services.AuditService,
	prometheusMetrics metrics.Recorder,
) handlerSet {
	return handlerSet{
		auth:     handlers.NewAuthHandler(userService, sessionOptions(cfg), prometheusMetrics),
		commCode: handlers.NewCommCodeHandler(commCodeService),
		audit:    handlers.NewAuditHandler(auditService),
	}
}
