package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/middleware"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeMetrics(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		cfg := &config.Config{MetricsEnabled: enabled}
		m := initializeMetrics(cfg)
		require.NotNil(t, m)
	}
}

func TestInitializeMetricsCacheDisabled(t *testing.T) {
	ctx := context.Background()

	// Metrics disabled - no cache
	c, closer, err := initializeMetricsCache(
		ctx,
		&config.Config{MetricsEnabled: false, MetricsGaugeUpdateEnabled: true},
	)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, closer)

	// Gauge updates disabled - no cache
	c, closer, err = initializeMetricsCache(
		ctx,
		&config.Config{MetricsEnabled: true, MetricsGaugeUpdateEnabled: false},
	)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, closer)
}

func TestInitializeMetricsCacheMemory(t *testing.T) {
	cfg := &config.Config{
		MetricsEnabled:            true,
		MetricsGaugeUpdateEnabled: true,
		MetricsCacheType:          config.CommCodeCacheTypeMemory,
		CacheInitTimeout:          time.Second,
	}
	c, closer, err := initializeMetricsCache(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, closer)
	_ = closer()
}

func TestInitializeCommCodeCacheMemory(t *testing.T) {
	cfg := &config.Config{
		CommCodeCacheType: config.CommCodeCacheTypeMemory,
		CacheInitTimeout:  time.Second,
	}
	c, closer, err := initializeCommCodeCache(context.Background(), cfg, initializeMetrics(cfg))
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, closer)
	assert.NoError(t, c.Health(context.Background()))
	_ = closer()
}

func TestInitializeCredentialVerifier(t *testing.T) {
	v, err := initializeCredentialVerifier(&config.Config{AuthMode: config.AuthModeLocal})
	require.NoError(t, err)
	assert.Equal(t, "local", v.Name())

	v, err = initializeCredentialVerifier(&config.Config{
		AuthMode:          config.AuthModeHTTPAPI,
		HTTPAPIURL:        "http://auth.example.com/verify",
		HTTPAPIAuthMode:   "none",
		HTTPAPITimeout:    time.Second,
		HTTPAPIMaxRetries: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "http_api", v.Name())
}

func TestSetupRateLimitingDisabled(t *testing.T) {
	limiters, err := setupRateLimiting(&config.Config{EnableRateLimit: false}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, limiters.login)
	require.NotNil(t, limiters.api)

	// Verify noop middlewares don't panic
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	assert.NotPanics(t, func() { limiters.login(c) })
}

func TestSetupRateLimitingMemory(t *testing.T) {
	cfg := &config.Config{
		EnableRateLimit: true,
		RateLimitStore:  config.RateLimitStoreMemory,
		LoginRateLimit:  5,
		APIRateLimit:    20,
	}
	limiters, err := setupRateLimiting(cfg, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, limiters.login)
	require.NotNil(t, limiters.api)
}

func TestSetupRateLimitingRedisWithoutClient(t *testing.T) {
	cfg := &config.Config{
		EnableRateLimit: true,
		RateLimitStore:  config.RateLimitStoreRedis,
		LoginRateLimit:  5,
		APIRateLimit:    20,
	}
	_, err := setupRateLimiting(cfg, nil, nil)
	require.ErrorIs(t, err, middleware.ErrRedisClientRequired)
}

func TestCreateHTTPServer(t *testing.T) {
	srv := createHTTPServer(
		&config.Config{ServerAddr: ":8080"},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)
	require.NotNil(t, srv)
	assert.Equal(t, ":8080", srv.Addr)
}

func TestGinModeMap(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, ginModeMap[true])
	assert.Equal(t, gin.DebugMode, ginModeMap[false])
}

// newTestApplication wires every layer except the listener.
func newTestApplication(t *testing.T, mutate func(cfg *config.Config)) *Application {
	t.Helper()
	cfg := &config.Config{
		IsProduction:         true,
		SessionSecret:        "test-secret",
		SessionMaxAge:        3600,
		EnableCSRF:           true,
		DatabaseDriver:       "sqlite",
		DatabaseDSN:          ":memory:",
		DefaultAdminPassword: "admin-pass",
		DefaultTenantID:      1,
		AuthMode:             config.AuthModeLocal,
		LockoutThreshold:     config.DefaultLockoutThreshold,
		RateLimitStore:       config.RateLimitStoreMemory,
		CommCodeCacheType:    config.CommCodeCacheTypeMemory,
		CommCodeCacheTTL:     time.Minute,
		EnableAuditLogging:   true,
		AuditLogBufferSize:   100,
		DBInitTimeout:        5 * time.Second,
		CacheInitTimeout:     time.Second,
	}
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	app := &Application{Config: cfg}
	require.NoError(t, app.initializeInfrastructure(context.Background()))
	require.NoError(t, app.initializeBusinessLayer())
	require.NoError(t, app.initializeHTTPLayer())

	t.Cleanup(func() {
		_ = app.AuditService.Shutdown(context.Background())
		_ = app.CommCodeCacheCloser()
		_ = app.DB.Close()
	})
	return app
}

func serve(app *Application, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestApplication_LoginFlow(t *testing.T) {
	app := newTestApplication(t, nil)

	// Health
	w := serve(app, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Login as the seeded administrator
	w = serve(app, loginRequest(store.DefaultAdminCode, "admin-pass"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookie := sessionCookie(t, w)

	// Session read returns a CSRF token
	req := httptest.NewRequest(http.MethodGet, "/api/user/info", nil)
	req.AddCookie(cookie)
	w = serve(app, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), auth.AuthorityAdmin)
	token := w.Header().Get(middleware.CSRFHeader)
	require.NotEmpty(t, token)
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}

	// Admin audit view
	req = httptest.NewRequest(http.MethodGet, "/api/admin/login-audit", nil)
	req.AddCookie(cookie)
	w = serve(app, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Logout without the token is refused
	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(cookie)
	w = serve(app, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(cookie)
	req.Header.Set(middleware.CSRFHeader, token)
	w = serve(app, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplication_BypassIdentifier(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) {
		cfg.BypassUsers = []string{store.DefaultAdminCode}
	})

	w := serve(app, loginRequest(store.DefaultAdminCode, "not-the-password"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplication_CSRFDisabled(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) {
		cfg.EnableCSRF = false
	})

	w := serve(app, loginRequest(store.DefaultAdminCode, "admin-pass"))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(sessionCookie(t, w))
	w = serve(app, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplication_LoginRateLimited(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) {
		cfg.EnableRateLimit = true
		cfg.LoginRateLimit = 2
		cfg.APIRateLimit = 100
	})

	for range 2 {
		w := serve(app, loginRequest("ghost", "x"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := serve(app, loginRequest("ghost", "x"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCleanupAuditLogs(t *testing.T) {
	app := newTestApplication(t, nil)
	require.NoError(t, app.AuditService.LogSync(context.Background(), services.AuditLogEntry{
		Action:  "old event",
		Success: true,
	}))
	assert.NotPanics(t, func() {
		cleanupAuditLogs(context.Background(), app.AuditService, time.Hour)
	})
}

func TestApplication_SessionLifetimeFollowsConnDur(t *testing.T) {
	app := newTestApplication(t, nil)
	require.NoError(t, app.DB.DB().Model(&models.User{}).
		Where("USER_CODE = ?", store.DefaultAdminCode).
		Update("CONN_DUR", 1).Error)

	w := serve(app, loginRequest(store.DefaultAdminCode, "admin-pass"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookie := sessionCookie(t, w)
	assert.Equal(t, 60, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	req.AddCookie(cookie)
	w = serve(app, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), store.DefaultAdminCode)
	for _, c := range w.Result().Cookies() {
		assert.LessOrEqual(t, c.MaxAge, 60, "cookie %s outlives CONN_DUR", c.Name)
	}
}

func TestApplication_LogoutWithXSRFCookie(t *testing.T) {
	app := newTestApplication(t, nil)

	w := serve(app, loginRequest(store.DefaultAdminCode, "admin-pass"))
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	var xsrf *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.XSRFCookie {
			xsrf = c
		}
	}
	require.NotNil(t, xsrf, "login must publish the XSRF cookie")
	assert.False(t, xsrf.HttpOnly)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(cookie)
	req.AddCookie(xsrf)
	req.Header.Set(middleware.XSRFHeader, xsrf.Value)
	w = serve(app, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestShutdownSteps_FlushAuditBeforeClosingDatabase(t *testing.T) {
	const queued = 5000
	dsn := filepath.Join(t.TempDir(), "monarch.db")
	app := newTestApplication(t, func(cfg *config.Config) {
		cfg.DatabaseDSN = dsn
		cfg.AuditLogBufferSize = queued * 2
		cfg.ServerShutdownTimeout = time.Second
		cfg.AuditShutdownTimeout = 30 * time.Second
	})

	ctx := context.Background()
	for i := range queued {
		app.AuditService.Log(ctx, services.AuditLogEntry{
			EventType:  models.EventLogout,
			Action:     "queued before shutdown",
			ResourceID: strconv.Itoa(i),
			Success:    true,
		})
	}

	steps := app.shutdownSteps()
	var names []string
	for _, s := range steps {
		names = append(names, s.name)
	}
	assert.Equal(t, "http server", names[0])
	assert.Equal(t, "audit service", names[1])
	assert.Equal(t, "database", names[len(names)-1])

	require.NoError(t, runShutdown(steps))

	reopened, err := store.New(ctx, "sqlite", dsn, app.Config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	var persisted int64
	require.NoError(t, reopened.DB().Model(&models.AuditLog{}).
		Where("action = ?", "queued before shutdown").
		Count(&persisted).Error)
	assert.Equal(t, int64(queued), persisted)
}

func TestRunShutdown_ContinuesAfterFailure(t *testing.T) {
	var ran []string
	errBoom := errors.New("boom")
	err := runShutdown([]shutdownStep{
		{"first", func() error { ran = append(ran, "first"); return errBoom }},
		{"skipped", nil},
		{"second", func() error { ran = append(ran, "second"); return nil }},
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"first", "second"}, ran)
}
