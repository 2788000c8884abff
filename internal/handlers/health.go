package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheck returns a handler for GET /health.
// The database must answer; the cache is reported but does not fail the probe.
func HealthCheck(db healthChecker, cache healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := db.Health(ctx); err != nil {
			log.Printf("[Health] database check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
				"error":    err.Error(),
			})
			return
		}

		resp := gin.H{
			"status":   "healthy",
			"database": "connected",
		}
		if cache != nil {
			if err := cache.Health(ctx); err != nil {
				log.Printf("[Health] cache check failed: %v", err)
				resp["cache"] = "degraded"
			} else {
				resp["cache"] = "connected"
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
