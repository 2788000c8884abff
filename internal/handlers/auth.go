package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/middleware"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Login sources reported to metrics.
const (
	loginSourceForm = "form"
	loginSourceJSON = "json"
)

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// UserInfo is the user payload the SPA keeps in sessionStorage.
type UserInfo struct {
	UserNo      int64    `json:"M_USER_NO"`
	UserCode    string   `json:"USER_CODE"`
	UserName    string   `json:"USER_NAME"`
	UsiteNo     int64    `json:"M_USITE_NO"`
	UserLang    string   `json:"USER_LANG,omitempty"`
	AuthNum     *int     `json:"AUTH_NUM,omitempty"`
	Authorities []string `json:"authorities"`
}

type AuthHandler struct {
	userService    *services.UserService
	sessionOptions sessions.Options
	metrics        core.Recorder
}

func NewAuthHandler(
	us *services.UserService,
	sessionOptions sessions.Options,
	m core.Recorder,
) *AuthHandler {
	return &AuthHandler{
		userService:    us,
		sessionOptions: sessionOptions,
		metrics:        m,
	}
}

// Login handles POST /api/login with a form or JSON body.
func (h *AuthHandler) Login(c *gin.Context) {
	source := loginSourceForm
	if c.ContentType() == gin.MIMEJSON {
		source = loginSourceJSON
	}

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		respondInvalidRequest(c, "username is required")
		return
	}

	principal, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordLogin(source, false)
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserNo, principal.User.ID)
	session.Set(middleware.SessionUserCode, principal.User.Identifier)
	session.Set(middleware.SessionUsiteNo, principal.User.TenantID)
	session.Set(middleware.SessionAuthorities, principal.Authorities.Slice())
	session.Set(middleware.SessionLoginAt, time.Now().Unix())

	opts := h.sessionOptions
	if d := principal.User.SessionDuration; d > 0 {
		opts.MaxAge = int(d.Seconds())
	}
	session.Set(middleware.SessionMaxAge, int64(opts.MaxAge))
	session.Options(opts)

	if _, _, err := middleware.IssueCSRFToken(c, session, opts); err != nil {
		h.metrics.RecordLogin(source, false)
		respondServerError(c, "Failed to create session")
		return
	}
	if err := session.Save(); err != nil {
		h.metrics.RecordLogin(source, false)
		respondServerError(c, "Failed to create session")
		return
	}

	h.metrics.RecordLogin(source, true)
	c.JSON(http.StatusOK, userInfoFromPrincipal(principal))
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	userNo, _ := session.Get(middleware.SessionUserNo).(int64)
	userCode, _ := session.Get(middleware.SessionUserCode).(string)
	loginAt, _ := session.Get(middleware.SessionLoginAt).(int64)

	session.Clear()
	opts := h.sessionOptions
	opts.MaxAge = -1
	session.Options(opts)
	if err := session.Save(); err != nil {
		respondServerError(c, "Failed to clear session")
		return
	}

	if userNo != 0 {
		var age time.Duration
		if loginAt > 0 {
			age = time.Since(time.Unix(loginAt, 0))
		}
		h.userService.LogLogout(c.Request.Context(), userNo, userCode, age)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UserInfo handles GET /api/user/info for the signed-in user.
func (h *AuthHandler) UserInfo(c *gin.Context) {
	userNo := c.GetInt64(middleware.ContextUserNo)

	user, err := h.userService.GetUserByNo(c.Request.Context(), userNo)
	switch {
	case errors.Is(err, services.ErrUserNotFound), err == nil && !user.IsActive():
		// The account was removed or disabled after login
		session := sessions.Default(c)
		session.Clear()
		_ = session.Save()
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "unauthorized",
			"error_description": "Account is no longer active",
		})
		return
	case err != nil:
		respondServerError(c, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, userInfoFromModel(user))
}

func userInfoFromModel(u *models.User) UserInfo {
	return UserInfo{
		UserNo:      u.UserNo,
		UserCode:    u.UserCode,
		UserName:    u.UserName,
		UsiteNo:     u.UsiteNo,
		UserLang:    u.UserLang,
		AuthNum:     u.AuthNum,
		Authorities: auth.AuthoritiesFor(u).Slice(),
	}
}

func userInfoFromPrincipal(p *core.Principal) UserInfo {
	authorities := p.Authorities.Slice()
	return UserInfo{
		UserNo:      p.User.ID,
		UserCode:    p.User.Identifier,
		UserName:    p.User.Name,
		UsiteNo:     p.User.TenantID,
		UserLang:    p.User.Lang,
		AuthNum:     authNumFrom(authorities),
		Authorities: authorities,
	}
}

// authNumFrom recovers AUTH_NUM from its AUTH_<n> authority.
func authNumFrom(authorities []string) *int {
	for _, a := range authorities {
		if rest, ok := strings.CutPrefix(a, "AUTH_"); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				return &n
			}
		}
	}
	return nil
}

// Hello handles GET /api/hello, the greeting the SPA's main page shows
// after sign-in.
func (h *AuthHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hello, " + util.GetUserCodeFromContext(c) + "!",
	})
}
