package util

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey int

const ipKey contextKey = iota

// Gin context keys populated by IPMiddleware and RequireAuth.
const (
	ClientIPKey = "client_ip"
	UserCodeKey = "user_code"
)

// IPMiddleware extracts client IP and stores it in the context
func IPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Gin's ClientIP() handles X-Forwarded-For and other headers
		ip := c.ClientIP()
		c.Set(ClientIPKey, ip)
		c.Request = c.Request.WithContext(SetIPContext(c.Request.Context(), ip))
		c.Next()
	}
}

// SetIPContext returns a copy of ctx carrying ip. An empty ip leaves ctx unchanged.
func SetIPContext(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, ipKey, ip)
}

// GetIPFromContext extracts the client IP address from the context
func GetIPFromContext(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		return ginCtx.ClientIP()
	}

	if ip, ok := ctx.Value(ipKey).(string); ok {
		return ip
	}

	return ""
}

// GetUserCodeFromContext returns the USER_CODE of the signed-in user, if any.
func GetUserCodeFromContext(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		return ginCtx.GetString(UserCodeKey)
	}
	return ""
}
