package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestLogin_FormSuccess(t *testing.T) {
	env := setupTestEnv(t)
	u := env.createUser(t, "", 0, intPtr(3))

	w := env.postForm("/api/login", url.Values{"username": {u.UserCode}, "password": {testPassword}})
	require.Equal(t, http.StatusOK, w.Code)

	var info UserInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, u.UserNo, info.UserNo)
	assert.Equal(t, u.UserCode, info.UserCode)
	assert.Equal(t, int64(1), info.UsiteNo)
	assert.Equal(t, "ko", info.UserLang)
	require.NotNil(t, info.AuthNum)
	assert.Equal(t, 3, *info.AuthNum)
	assert.Equal(t, []string{"AUTH_3", auth.AuthorityUser}, info.Authorities)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestLogin_JSONSuccess(t *testing.T) {
	env := setupTestEnv(t)
	u := env.createUser(t, "", 0, nil)

	body, _ := json.Marshal(map[string]string{"username": u.UserCode, "password": testPassword})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u.UserCode, decodeJSON(t, w)["USER_CODE"])
}

func TestLogin_Failures(t *testing.T) {
	env := setupTestEnv(t)
	active := env.createUser(t, "", 0, nil)
	locked := env.createUser(t, "", 5, nil)

	tests := []struct {
		name     string
		username string
		password string
		status   int
		code     string
	}{
		{"wrong password", active.UserCode, "nope", http.StatusUnauthorized, auth.ReasonInvalidCredentials},
		{"unknown user", "ghost", testPassword, http.StatusUnauthorized, auth.ReasonUserNotFound},
		{"locked account", locked.UserCode, testPassword, http.StatusLocked, auth.ReasonAccountLocked},
		{"blank username", "   ", testPassword, http.StatusBadRequest, "invalid_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.postForm("/api/login", url.Values{"username": {tt.username}, "password": {tt.password}})
			assert.Equal(t, tt.status, w.Code)
			body := decodeJSON(t, w)
			assert.Equal(t, tt.code, body["error"])
			assert.NotEmpty(t, body["error_description"])
		})
	}
}

func TestLogin_BypassIgnoresCredential(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, testBypassUser, 999, nil)

	w := env.postForm("/api/login", url.Values{"username": {testBypassUser}, "password": {"anything"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testBypassUser, decodeJSON(t, w)["USER_CODE"])
}

func TestUserInfo(t *testing.T) {
	env := setupTestEnv(t)
	u := env.createUser(t, "", 0, intPtr(models.AdminAuthNum))
	cookie := env.login(t, u.UserCode)

	w := env.get("/api/user/info", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var info UserInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, u.UserNo, info.UserNo)
	assert.Contains(t, info.Authorities, auth.AuthorityAdmin)
}

func TestUserInfo_RequiresSession(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/api/user/info")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserInfo_DisabledAfterLogin(t *testing.T) {
	env := setupTestEnv(t)
	u := env.createUser(t, "", 0, nil)
	cookie := env.login(t, u.UserCode)

	require.NoError(t, env.store.DB().Model(&models.User{}).
		Where("M_USER_NO = ?", u.UserNo).
		Update("USE_FLAG", "0").Error)

	w := env.get("/api/user/info", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	env := setupTestEnv(t)
	u := env.createUser(t, "", 0, nil)
	cookie := env.login(t, u.UserCode)

	w := env.postForm("/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeJSON(t, w)["success"])

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == cookie.Name {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	require.NoError(t, env.audit.Shutdown(context.Background()))
	var count int64
	require.NoError(t, env.store.DB().Model(&models.AuditLog{}).
		Where("event_type = ? AND actor_user_code = ?", models.EventLogout, u.UserCode).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRespondAuthError_Statuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{auth.ErrDirectoryUnavailable, http.StatusServiceUnavailable, auth.ReasonDirectoryUnavailable},
		{auth.ErrNoProviderAvailable, http.StatusInternalServerError, auth.ReasonNoProviderAvailable},
		{auth.ErrHTTPAPIConnection, http.StatusBadGateway, auth.ReasonVerifierUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, auth.ReasonInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondAuthError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeJSON(t, w)["error"])
		})
	}
}

func TestAuthNumFrom(t *testing.T) {
	assert.Nil(t, authNumFrom([]string{auth.AuthorityUser}))
	n := authNumFrom([]string{"AUTH_x", "AUTH_7", auth.AuthorityUser})
	require.NotNil(t, n)
	assert.Equal(t, 7, *n)
}

func TestHello(t *testing.T) {
	env := setupTestEnv(t)
	u := env.createUser(t, "", 0, nil)

	w := env.get("/api/hello")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.get("/api/hello", env.login(t, u.UserCode))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, "+u.UserCode+"!", decodeJSON(t, w)["message"])
}
