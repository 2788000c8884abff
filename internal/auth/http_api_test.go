package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/client"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPAPIProvider(t *testing.T, url, authMode, secret, header string) *HTTPAPIAuthProvider {
	t.Helper()
	if header == "" {
		header = "X-API-Secret"
	}
	rc, err := client.NewRetryClient(client.Options{
		AuthMode:      authMode,
		AuthSecret:    secret,
		AuthHeader:    header,
		Timeout:       5 * time.Second,
		RetryDelay:    10 * time.Millisecond,
		MaxRetryDelay: 20 * time.Millisecond,
	})
	require.NoError(t, err)
	return NewHTTPAPIAuthProvider(url, rc)
}

func testRecord() *core.UserRecord {
	return &core.UserRecord{ID: 7, Identifier: "testuser", TenantID: 1, Active: true}
}

func TestHTTPAPIAuthProvider_VerifyCredential_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req APIAuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "testuser", req.Username)
		assert.Equal(t, "password123", req.Password)
		assert.Equal(t, int64(1), req.UsiteNo)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(APIAuthResponse{Success: true})
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "none", "", "")
	err := provider.VerifyCredential(context.Background(), testRecord(), "password123")
	require.NoError(t, err)
}

func TestHTTPAPIAuthProvider_VerifyCredential_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(APIAuthResponse{
			Success: false,
			Message: "Invalid credentials",
		})
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "none", "", "")
	err := provider.VerifyCredential(context.Background(), testRecord(), "wrongpassword")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialMismatch)
	assert.ErrorIs(t, err, ErrHTTPAPIAuthFailed)
}

func TestHTTPAPIAuthProvider_VerifyCredential_Non2xxWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(APIAuthResponse{Message: "Unauthorized access"})
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "none", "", "")
	err := provider.VerifyCredential(context.Background(), testRecord(), "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialMismatch)
	assert.Contains(t, err.Error(), "Unauthorized access")
}

func TestHTTPAPIAuthProvider_VerifyCredential_Non2xxPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "none", "", "")
	err := provider.VerifyCredential(context.Background(), testRecord(), "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPAPIInvalidResp)
	assert.NotErrorIs(t, err, ErrCredentialMismatch)
}

func TestHTTPAPIAuthProvider_VerifyCredential_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "none", "", "")
	err := provider.VerifyCredential(context.Background(), testRecord(), "password123")
	assert.ErrorIs(t, err, ErrHTTPAPIInvalidResp)
}

func TestHTTPAPIAuthProvider_VerifyCredential_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	provider := newTestHTTPAPIProvider(t, url, "none", "", "")
	err := provider.VerifyCredential(context.Background(), testRecord(), "password123")
	assert.ErrorIs(t, err, ErrHTTPAPIConnection)
}

func TestHTTPAPIAuthProvider_VerifyCredential_EmptyCredential(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "none", "", "")
	err := provider.VerifyCredential(context.Background(), testRecord(), "")
	assert.ErrorIs(t, err, ErrCredentialMismatch)
	assert.False(t, called)
}

func TestHTTPAPIAuthProvider_SimpleAuth_CustomHeader(t *testing.T) {
	const testSecret = "auth-secret-key-456" //nolint:gosec // Test secret, not production
	const customHeader = "X-Internal-Auth"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get(customHeader) != testSecret {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(APIAuthResponse{Message: "Invalid auth token"})
			return
		}
		_ = json.NewEncoder(w).Encode(APIAuthResponse{Success: true})
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "simple", testSecret, customHeader)
	require.NoError(t, provider.VerifyCredential(context.Background(), testRecord(), "pw"))
}

func TestHTTPAPIAuthProvider_HMACAuth_HeadersPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Signature"), "X-Signature header should be present")
		assert.NotEmpty(t, r.Header.Get("X-Timestamp"), "X-Timestamp header should be present")
		assert.NotEmpty(t, r.Header.Get("X-Nonce"), "X-Nonce header should be present")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(APIAuthResponse{Success: true})
	}))
	defer server.Close()

	provider := newTestHTTPAPIProvider(t, server.URL, "hmac", "test-secret", "")
	require.NoError(t, provider.VerifyCredential(context.Background(), testRecord(), "pw"))
}

func TestHTTPAPIAuthProvider_Name(t *testing.T) {
	provider := NewHTTPAPIAuthProvider("http://localhost", nil)
	assert.Equal(t, "http_api", provider.Name())
}
