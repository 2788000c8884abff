package auth

import "errors"

var (
	// ErrUserNotFound means the directory holds no active record for the identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountLocked means the failure counter reached the lockout threshold.
	ErrAccountLocked = errors.New("account locked")
	// ErrNoProviderAvailable means every provider in the chain deferred.
	ErrNoProviderAvailable = errors.New("no authentication provider available")
	// ErrCredentialMismatch means the presented credential did not verify.
	ErrCredentialMismatch = errors.New("invalid username or password")
	// ErrDirectoryUnavailable means the user lookup itself failed.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")

	// HTTP API errors
	ErrHTTPAPIConnection  = errors.New("failed to connect to authentication API")
	ErrHTTPAPIAuthFailed  = errors.New("authentication API rejected credentials")
	ErrHTTPAPIInvalidResp = errors.New("invalid response from authentication API")
)

// Reason codes reported to clients, metrics and the audit trail.
const (
	ReasonUserNotFound         = "user_not_found"
	ReasonAccountLocked        = "account_locked"
	ReasonInvalidCredentials   = "invalid_credentials"
	ReasonDirectoryUnavailable = "directory_unavailable"
	ReasonNoProviderAvailable  = "no_provider_available"
	ReasonVerifierUnavailable  = "verifier_unavailable"
	ReasonInternalError        = "internal_error"
)

// ReasonCode maps a rejection reason to its stable code. A nil error maps to "".
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUserNotFound):
		return ReasonUserNotFound
	case errors.Is(err, ErrAccountLocked):
		return ReasonAccountLocked
	case errors.Is(err, ErrCredentialMismatch):
		return ReasonInvalidCredentials
	case errors.Is(err, ErrDirectoryUnavailable):
		return ReasonDirectoryUnavailable
	case errors.Is(err, ErrNoProviderAvailable):
		return ReasonNoProviderAvailable
	case errors.Is(err, ErrHTTPAPIConnection), errors.Is(err, ErrHTTPAPIInvalidResp):
		return ReasonVerifierUnavailable
	default:
		return ReasonInternalError
	}
}
