package bootstrap

import (
	"log"
	"net/http"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/handlers"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/middleware"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
	"github.com/jiheejiheekim/monarch-Mobile/internal/util"
	"github.com/jiheejiheekim/monarch-Mobile/internal/version"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// sessionCookieName names the signed cookie carrying the session.
const sessionCookieName = "monarch_session"

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	commCodeCache core.Cache[[]models.CommCode],
	h handlerSet,
	prometheusMetrics metrics.Recorder,
	auditService *services.AuditService,
	rateLimitRedisClient *redis.Client,
) (*gin.Engine, error) {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(util.IPMiddleware())

	setupSessionMiddleware(r, cfg)

	r.GET("/health", handlers.HealthCheck(db, commCodeCache))
	setupMetricsEndpoint(r, cfg)

	rateLimiters, err := setupRateLimiting(cfg, auditService, rateLimitRedisClient)
	if err != nil {
		return nil, err
	}
	setupAllRoutes(r, cfg, h, rateLimiters)

	logServerStartup(cfg)

	return r, nil
}

// sessionOptions returns the cookie attributes shared by the store and the handlers
func sessionOptions(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	}
}

// setupSessionMiddleware configures session handling middleware
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessionOptions(cfg))
	r.Use(sessions.Sessions(sessionCookieName, sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	cfg *config.Config,
	h handlerSet,
	rateLimiters rateLimitMiddlewares,
) {
	// Public: establishes the session
	r.POST("/api/login", rateLimiters.login, h.auth.Login)

	// Session routes
	protected := r.Group("/api")
	protected.Use(middleware.RequireAuth(sessionOptions(cfg)), rateLimiters.api)
	if cfg.EnableCSRF {
		protected.Use(middleware.CSRFMiddleware())
	}
	{
		protected.POST("/logout", h.auth.Logout)
		protected.GET("/user/info", h.auth.UserInfo)
		protected.GET("/hello", h.auth.Hello)
		protected.GET("/comm-code", h.commCode.GetCommCodes)
	}

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/login-audit", h.audit.ListLoginAudit)
		admin.GET("/login-audit/stats", h.audit.GetAuditLogStats)
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	log.Printf("Authentication mode: %s", cfg.AuthMode)
	log.Printf("%s starting on %s", version.Summary(), cfg.ServerAddr)
	log.Printf("Login endpoint: %s/api/login", cfg.BaseURL)
	log.Printf("Default user: admin (check logs for password if first run)")
}
