package bootstrap

import (
	"fmt"
	"log"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/middleware"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	loginRateLimitPrefix = "monarch:ratelimit:login:"
	apiRateLimitPrefix   = "monarch:ratelimit:api:"
)

// rateLimitMiddlewares keeps login and API budgets in separate counters, so
// a burst of failed logins does not starve signed-in users.
type rateLimitMiddlewares struct {
	login gin.HandlerFunc
	api   gin.HandlerFunc
}

func passThrough(c *gin.Context) { c.Next() }

func setupRateLimiting(
	cfg *config.Config,
	auditService *services.AuditService,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{login: passThrough, api: passThrough}, nil
	}

	base := middleware.RateLimitConfig{
		StoreType:       middleware.RateLimitStoreType(cfg.RateLimitStore),
		RedisClient:     redisClient,
		CleanupInterval: cfg.RateLimitCleanupInterval,
		AuditService:    auditService,
	}
	build := func(perMinute int, prefix string) (gin.HandlerFunc, error) {
		rc := base
		rc.RequestsPerMinute = perMinute
		rc.Prefix = prefix
		return middleware.NewRateLimiter(rc)
	}

	login, err := build(cfg.LoginRateLimit, loginRateLimitPrefix)
	if err != nil {
		return rateLimitMiddlewares{}, fmt.Errorf("login rate limiter: %w", err)
	}
	api, err := build(cfg.APIRateLimit, apiRateLimitPrefix)
	if err != nil {
		return rateLimitMiddlewares{}, fmt.Errorf("api rate limiter: %w", err)
	}

	log.Printf(
		"Rate limiting enabled (store=%s, login=%d/min, api=%d/min)",
		cfg.RateLimitStore, cfg.LoginRateLimit, cfg.APIRateLimit,
	)
	return rateLimitMiddlewares{login: login, api: api}, nil
}
