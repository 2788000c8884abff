package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Authentication mode constants (selects the default credential provider)
const (
	AuthModeLocal   = "local"
	AuthModeHTTPAPI = "http_api"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Common code cache type constants
const (
	CommCodeCacheTypeMemory     = "memory"
	CommCodeCacheTypeRedis      = "redis"
	CommCodeCacheTypeRedisAside = "redis-aside"
)

// DefaultSessionSecret is the development fallback for SESSION_SECRET.
const DefaultSessionSecret = "session-secret-change-in-production"

// DefaultLockoutThreshold is the failure count at which an account is locked.
const DefaultLockoutThreshold = 5

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// Session settings
	SessionSecret string
	SessionMaxAge int  // seconds
	EnableCSRF    bool // require X-CSRF-Token on state-changing session routes

	// Database
	DatabaseDriver       string // "sqlite" or "postgres"
	DatabaseDSN          string // Database connection string (DSN or path)
	DefaultAdminPassword string // Seeded admin password; random when empty
	DefaultTenantID      int64  // M_USITE_NO used for seed data

	// Authentication
	AuthMode         string   // "local" or "http_api"
	BypassUsers      []string // identifiers admitted without credential check and exempt from lockout
	LockoutThreshold int64

	// HTTP API Authentication
	HTTPAPIURL                string
	HTTPAPITimeout            time.Duration
	HTTPAPIInsecureSkipVerify bool
	HTTPAPIAuthMode           string // Authentication mode: "none", "simple", or "hmac"
	HTTPAPIAuthSecret         string // Shared secret for authentication
	HTTPAPIAuthHeader         string // Custom header name for simple mode (default: "X-API-Secret")
	HTTPAPIMaxRetries         int    // Maximum retry attempts (default: 3)
	HTTPAPIRetryDelay         time.Duration
	HTTPAPIMaxRetryDelay      time.Duration

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	LoginRateLimit           int    // requests per minute
	APIRateLimit             int    // requests per minute
	RateLimitCleanupInterval time.Duration

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Common code cache
	CommCodeCacheType        string
	CommCodeCacheTTL         time.Duration
	CommCodeCacheClientTTL   time.Duration
	CommCodeCacheSizePerConn int // MB

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration
	MetricsCacheType           string // backend for the shared gauge counts

	// Audit
	EnableAuditLogging bool
	AuditLogBufferSize int
	AuditLogRetention  time.Duration

	// Timeouts
	DBInitTimeout         time.Duration
	RedisConnTimeout      time.Duration
	CacheInitTimeout      time.Duration
	ServerShutdownTimeout time.Duration
	AuditShutdownTimeout  time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "monarch.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		IsProduction:  getEnv("ENVIRONMENT", "development") == "production",
		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 28800), // 8 hours
		EnableCSRF:    getEnvBool("ENABLE_CSRF", true),

		DatabaseDriver:       driver,
		DatabaseDSN:          dsn,
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		DefaultTenantID:      int64(getEnvInt("DEFAULT_TENANT_ID", 1)),

		// Authentication
		AuthMode:         getEnv("AUTH_MODE", AuthModeLocal),
		BypassUsers:      getEnvSlice("AUTH_BYPASS_USERS", nil),
		LockoutThreshold: int64(getEnvInt("LOCKOUT_THRESHOLD", DefaultLockoutThreshold)),

		// HTTP API Authentication
		HTTPAPIURL:                getEnv("HTTP_API_URL", ""),
		HTTPAPITimeout:            getEnvDuration("HTTP_API_TIMEOUT", 10*time.Second),
		HTTPAPIInsecureSkipVerify: getEnvBool("HTTP_API_INSECURE_SKIP_VERIFY", false),
		HTTPAPIAuthMode:           getEnv("HTTP_API_AUTH_MODE", "none"),
		HTTPAPIAuthSecret:         getEnv("HTTP_API_AUTH_SECRET", ""),
		HTTPAPIAuthHeader:         getEnv("HTTP_API_AUTH_HEADER", "X-API-Secret"),
		HTTPAPIMaxRetries:         getEnvInt("HTTP_API_MAX_RETRIES", 3),
		HTTPAPIRetryDelay:         getEnvDuration("HTTP_API_RETRY_DELAY", 1*time.Second),
		HTTPAPIMaxRetryDelay:      getEnvDuration("HTTP_API_MAX_RETRY_DELAY", 10*time.Second),

		// Rate limiting
		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 10),
		APIRateLimit:             getEnvInt("API_RATE_LIMIT", 120),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Common code cache
		CommCodeCacheType:        getEnv("COMM_CODE_CACHE_TYPE", CommCodeCacheTypeMemory),
		CommCodeCacheTTL:         getEnvDuration("COMM_CODE_CACHE_TTL", 10*time.Minute),
		CommCodeCacheClientTTL:   getEnvDuration("COMM_CODE_CACHE_CLIENT_TTL", 30*time.Second),
		CommCodeCacheSizePerConn: getEnvInt("COMM_CODE_CACHE_SIZE_PER_CONN", 32),

		// Metrics
		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 30*time.Second),
		MetricsCacheType:           getEnv("METRICS_CACHE_TYPE", CommCodeCacheTypeMemory),

		// Audit
		EnableAuditLogging: getEnvBool("ENABLE_AUDIT_LOGGING", true),
		AuditLogBufferSize: getEnvInt("AUDIT_LOG_BUFFER_SIZE", 1000),
		AuditLogRetention:  getEnvDuration("AUDIT_LOG_RETENTION", 90*24*time.Hour),

		// Timeouts
		DBInitTimeout:         getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),
		RedisConnTimeout:      getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),
		CacheInitTimeout:      getEnvDuration("CACHE_INIT_TIMEOUT", 5*time.Second),
		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		AuditShutdownTimeout:  getEnvDuration("AUDIT_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate checks enumerations and cross-field requirements.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeLocal:
	case AuthModeHTTPAPI:
		if c.HTTPAPIURL == "" {
			return errors.New("HTTP_API_URL is required when AUTH_MODE=http_api")
		}
	default:
		return fmt.Errorf("invalid AUTH_MODE value: %q (must be: local, http_api)", c.AuthMode)
	}

	if c.LockoutThreshold <= 0 {
		return fmt.Errorf("invalid LOCKOUT_THRESHOLD value: %d (must be > 0)", c.LockoutThreshold)
	}

	if c.RateLimitStore != RateLimitStoreMemory && c.RateLimitStore != RateLimitStoreRedis {
		return fmt.Errorf(
			"invalid RATE_LIMIT_STORE value: %q (must be: memory, redis)",
			c.RateLimitStore,
		)
	}

	switch c.CommCodeCacheType {
	case CommCodeCacheTypeMemory:
	case CommCodeCacheTypeRedis, CommCodeCacheTypeRedisAside:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when COMM_CODE_CACHE_TYPE=%s", c.CommCodeCacheType)
		}
		if c.CommCodeCacheType == CommCodeCacheTypeRedisAside && c.CommCodeCacheSizePerConn <= 0 {
			return fmt.Errorf(
				"invalid COMM_CODE_CACHE_SIZE_PER_CONN value: %d (must be > 0)",
				c.CommCodeCacheSizePerConn,
			)
		}
	default:
		return fmt.Errorf(
			"invalid COMM_CODE_CACHE_TYPE value: %q (must be: memory, redis, redis-aside)",
			c.CommCodeCacheType,
		)
	}

	if c.CommCodeCacheTTL <= 0 {
		return fmt.Errorf("invalid COMM_CODE_CACHE_TTL value: %s (must be > 0)", c.CommCodeCacheTTL)
	}

	if c.MetricsEnabled && c.MetricsGaugeUpdateEnabled {
		switch c.MetricsCacheType {
		case CommCodeCacheTypeMemory, CommCodeCacheTypeRedis, CommCodeCacheTypeRedisAside:
		default:
			return fmt.Errorf(
				"invalid METRICS_CACHE_TYPE value: %q (must be: memory, redis, redis-aside)",
				c.MetricsCacheType,
			)
		}
		if c.MetricsGaugeUpdateInterval <= 0 {
			return fmt.Errorf(
				"invalid METRICS_GAUGE_UPDATE_INTERVAL value: %s (must be > 0)",
				c.MetricsGaugeUpdateInterval,
			)
		}
	}

	if c.EnableRateLimit && c.RateLimitStore == RateLimitStoreRedis && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required when RATE_LIMIT_STORE=redis")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if parts := splitAndTrim(value, ","); len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
