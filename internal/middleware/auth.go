package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys written on login.
const (
	SessionUserNo      = "user_no"
	SessionUserCode    = "user_code"
	SessionUsiteNo     = "usite_no"
	SessionAuthorities = "authorities"
	SessionLoginAt     = "login_at"
	// SessionMaxAge is the lifetime in seconds granted at login. It comes
	// from the user's CONN_DUR or the configured default.
	SessionMaxAge = "max_age"
)

// Gin context keys set by RequireAuth.
const (
	ContextUserNo      = "user_no"
	ContextUsiteNo     = "usite_no"
	ContextAuthorities = "authorities"

	contextSessionOptions = "session_options"
)

// RequireAuth rejects requests without a signed-in session with 401 JSON.
// The session lasts SessionMaxAge seconds from login; base supplies the
// remaining cookie attributes and the lifetime for sessions without one.
// Any save later in the request keeps the cookie's expiry at the login deadline.
func RequireAuth(base sessions.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userNo, ok := session.Get(SessionUserNo).(int64)
		if !ok || userNo == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized",
				"error_description": "Login required",
			})
			return
		}

		opts, expired := remainingSession(session, base, time.Now())
		if expired {
			session.Clear()
			opts.MaxAge = -1
			session.Options(opts)
			_ = session.Save()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":             "session_expired",
				"error_description": "Session expired, please log in again",
			})
			return
		}
		session.Options(opts)
		c.Set(contextSessionOptions, opts)

		c.Set(ContextUserNo, userNo)
		if code, ok := session.Get(SessionUserCode).(string); ok {
			c.Set(util.UserCodeKey, code)
		}
		if usite, ok := session.Get(SessionUsiteNo).(int64); ok {
			c.Set(ContextUsiteNo, usite)
		}
		if authorities, ok := session.Get(SessionAuthorities).([]string); ok {
			c.Set(ContextAuthorities, authorities)
		}
		c.Next()
	}
}

// remainingSession returns base with MaxAge cut to the time left before the
// login deadline. Sessions without a login time or lifetime never expire here.
func remainingSession(session sessions.Session, base sessions.Options, now time.Time) (sessions.Options, bool) {
	opts := base
	loginAt, _ := session.Get(SessionLoginAt).(int64)
	maxAge, _ := session.Get(SessionMaxAge).(int64)
	if maxAge <= 0 {
		maxAge = int64(base.MaxAge)
	}
	if loginAt <= 0 || maxAge <= 0 {
		return opts, false
	}

	left := loginAt + maxAge - now.Unix()
	if left <= 0 {
		return opts, true
	}
	opts.MaxAge = int(left)
	return opts, false
}

// sessionOptionsFrom returns the cookie attributes RequireAuth settled on.
func sessionOptionsFrom(c *gin.Context) sessions.Options {
	if v, ok := c.Get(contextSessionOptions); ok {
		if opts, ok := v.(sessions.Options); ok {
			return opts
		}
	}
	return sessions.Options{Path: "/"}
}

// RequireAdmin requires ROLE_ADMIN among the session authorities.
// This middleware should be used after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasAuthority(c, auth.AuthorityAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":             "forbidden",
				"error_description": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// HasAuthority reports whether the signed-in user holds authority.
func HasAuthority(c *gin.Context, authority string) bool {
	authorities, _ := c.Get(ContextAuthorities)
	list, _ := authorities.([]string)
	return slices.Contains(list, authority)
}
