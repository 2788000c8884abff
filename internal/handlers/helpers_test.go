package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/cache"
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/middleware"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword   = "correct-horse"
	testBypassUser = "operator"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	audit  *services.AuditService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.New(context.Background(), "sqlite", ":memory:", &config.Config{
		DefaultTenantID: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := metrics.NewNoopMetrics()
	audit := services.NewAuditService(db, true, 100)
	t.Cleanup(func() { _ = audit.Shutdown(context.Background()) })

	allowList := auth.NewAllowList(testBypassUser)
	directory := auth.NewStoreDirectory(db)
	chain := auth.NewProviderChain(
		auth.NewBypassAuthProvider(directory, allowList),
		auth.NewCredentialAuthProvider(
			directory,
			auth.NewLockoutPolicy(allowList, config.DefaultLockoutThreshold),
			auth.NewLocalAuthProvider(),
		),
	)

	userService := services.NewUserService(db, chain, audit, m)
	commCodeService := services.NewCommCodeService(
		db,
		cache.NewMemoryCache[[]models.CommCode](),
		time.Minute,
		m,
	)

	sessionOptions := sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true}
	authHandler := NewAuthHandler(userService, sessionOptions, m)
	commCodeHandler := NewCommCodeHandler(commCodeService)
	auditHandler := NewAuditHandler(audit)

	r := gin.New()
	sessionStore := cookie.NewStore([]byte("test-secret"))
	sessionStore.Options(sessionOptions)
	r.Use(sessions.Sessions("test_session", sessionStore))

	r.GET("/health", HealthCheck(db, nil))
	r.POST("/api/login", authHandler.Login)

	api := r.Group("/api", middleware.RequireAuth(sessionOptions))
	api.POST("/logout", authHandler.Logout)
	api.GET("/user/info", authHandler.UserInfo)
	api.GET("/hello", authHandler.Hello)
	api.GET("/comm-code", commCodeHandler.GetCommCodes)

	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.GET("/login-audit", auditHandler.ListLoginAudit)
	admin.GET("/login-audit/stats", auditHandler.GetAuditLogStats)

	return &testEnv{router: r, store: db, audit: audit}
}

// createUser stores an active user with the given failure count and AUTH_NUM.
func (e *testEnv) createUser(t *testing.T, code string, failures int64, authNum *int) *models.User {
	t.Helper()
	if code == "" {
		code = "user-" + uuid.New().String()[:8]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		UserCode:     code,
		UserName:     "Test User",
		PasswordHash: string(hash),
		UseFlag:      models.UseFlagActive,
		UsiteNo:      1,
		UserLang:     "ko",
		AuthNum:      authNum,
	}
	u.SetFailureCount(failures)
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login signs in and returns the session cookie.
func (e *testEnv) login(t *testing.T, username string) *http.Cookie {
	t.Helper()
	w := e.postForm("/api/login", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "test_session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
