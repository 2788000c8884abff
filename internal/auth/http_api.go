package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"

	retry "github.com/appleboy/go-httpretry"
)

// HTTPAPIAuthProvider verifies credentials against an external HTTP API.
// The user must still exist in the local directory; the API only checks the secret.
type HTTPAPIAuthProvider struct {
	url         string
	retryClient *retry.Client
}

// NewHTTPAPIAuthProvider creates a new HTTP API credential verifier
func NewHTTPAPIAuthProvider(url string, retryClient *retry.Client) *HTTPAPIAuthProvider {
	return &HTTPAPIAuthProvider{
		url:         url,
		retryClient: retryClient,
	}
}

// APIAuthRequest is the request payload sent to external API
type APIAuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UsiteNo  int64  `json:"usite_no,omitempty"`
}

// APIAuthResponse is the expected response from external API
type APIAuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// VerifyCredential posts the credential to the external API.
// A well-formed rejection wraps ErrCredentialMismatch; transport and
// protocol failures are reported as ErrHTTPAPIConnection / ErrHTTPAPIInvalidResp.
func (p *HTTPAPIAuthProvider) VerifyCredential(
	ctx context.Context,
	user *core.UserRecord,
	credential string,
) error {
	if user == nil || credential == "" {
		return ErrCredentialMismatch
	}

	jsonData, err := json.Marshal(APIAuthRequest{
		Username: user.Identifier,
		Password: credential,
		UsiteNo:  user.TenantID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// Authentication headers are added by the underlying auth client
	resp, err := p.retryClient.Post(
		ctx,
		p.url,
		retry.WithBody("application/json", bytes.NewBuffer(jsonData)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTTPAPIConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response", ErrHTTPAPIInvalidResp)
	}

	var authResp APIAuthResponse
	jsonErr := json.Unmarshal(body, &authResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if jsonErr == nil && authResp.Message != "" {
			return fmt.Errorf(
				"%w: %w: HTTP %d - %s",
				ErrCredentialMismatch,
				ErrHTTPAPIAuthFailed,
				resp.StatusCode,
				authResp.Message,
			)
		}
		// Limit body preview to 200 characters to avoid overwhelming logs
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		return fmt.Errorf(
			"%w: HTTP %d - %s",
			ErrHTTPAPIInvalidResp,
			resp.StatusCode,
			bodyPreview,
		)
	}

	if jsonErr != nil {
		return fmt.Errorf("%w: %v", ErrHTTPAPIInvalidResp, jsonErr)
	}
	if !authResp.Success {
		return fmt.Errorf("%w: %w", ErrCredentialMismatch, ErrHTTPAPIAuthFailed)
	}
	return nil
}

// Name returns provider name for logging
func (p *HTTPAPIAuthProvider) Name() string {
	return "http_api"
}
