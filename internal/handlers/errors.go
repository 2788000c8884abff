package handlers

import (
	"net/http"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"

	"github.com/gin-gonic/gin"
)

var authErrorStatus = map[string]int{
	auth.ReasonUserNotFound:         http.StatusUnauthorized,
	auth.ReasonInvalidCredentials:   http.StatusUnauthorized,
	auth.ReasonAccountLocked:        http.StatusLocked,
	auth.ReasonDirectoryUnavailable: http.StatusServiceUnavailable,
	auth.ReasonNoProviderAvailable:  http.StatusInternalServerError,
	auth.ReasonVerifierUnavailable:  http.StatusBadGateway,
}

var authErrorDescription = map[string]string{
	auth.ReasonUserNotFound:         "User not found",
	auth.ReasonInvalidCredentials:   "Invalid username or password",
	auth.ReasonAccountLocked:        "Account is locked after too many failed attempts",
	auth.ReasonDirectoryUnavailable: "User directory is temporarily unavailable",
	auth.ReasonNoProviderAvailable:  "No authentication provider is configured",
	auth.ReasonVerifierUnavailable:  "Authentication service is unavailable",
}

// respondAuthError writes the JSON error for a rejected login.
func respondAuthError(c *gin.Context, err error) {
	code := auth.ReasonCode(err)
	status, ok := authErrorStatus[code]
	if !ok {
		status = http.StatusInternalServerError
		code = auth.ReasonInternalError
	}
	description, ok := authErrorDescription[code]
	if !ok {
		description = "Authentication failed"
	}
	c.JSON(status, gin.H{
		"error":             code,
		"error_description": description,
	})
}

func respondInvalidRequest(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":             "invalid_request",
		"error_description": description,
	})
}

func respondServerError(c *gin.Context, description string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":             "server_error",
		"error_description": description,
	})
}
