package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/jiheejiheekim/monarch-Mobile/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	csrfTokenKey = "csrf_token"
	// CSRFHeader carries the token both ways: issued on every response of a
	// protected route and expected on state-changing requests.
	CSRFHeader = "X-CSRF-Token"
	// XSRFCookie and XSRFHeader are the names axios uses by default: it
	// copies the readable cookie into the header on same-origin requests.
	XSRFCookie = "XSRF-TOKEN"
	XSRFHeader = "X-XSRF-TOKEN"
)

// IssueCSRFToken stores a token in the session when it has none and
// publishes it in CSRFHeader and the XSRFCookie. The caller saves the
// session. It reports whether a new token was minted.
func IssueCSRFToken(c *gin.Context, session sessions.Session, opts sessions.Options) (string, bool, error) {
	token, _ := session.Get(csrfTokenKey).(string)
	minted := false
	if token == "" {
		var err error
		if token, err = util.CryptoRandomString(64); err != nil {
			return "", false, err
		}
		session.Set(csrfTokenKey, token)
		minted = true
	}

	c.Header(CSRFHeader, token)
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     XSRFCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	return token, minted, nil
}

// CSRFMiddleware provides CSRF protection for state-changing operations.
// It must run after RequireAuth.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		token, minted, err := IssueCSRFToken(c, session, sessionOptionsFrom(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "server_error",
			})
			return
		}
		if minted {
			if err := session.Save(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":             "server_error",
					"error_description": "Failed to save CSRF token",
				})
				return
			}
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
			submitted := c.GetHeader(CSRFHeader)
			if submitted == "" {
				submitted = c.GetHeader(XSRFHeader)
			}
			if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":             "csrf_token_invalid",
					"error_description": "CSRF token validation failed. Reload and try again.",
				})
				return
			}
		}

		c.Next()
	}
}
