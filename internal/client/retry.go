package client

import (
	"fmt"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// Options configures the outbound client used to reach a credential API.
type Options struct {
	AuthMode           string // "none", "simple" or "hmac"
	AuthSecret         string
	AuthHeader         string // header name for simple mode
	Timeout            time.Duration
	InsecureSkipVerify bool
	MaxRetries         int
	RetryDelay         time.Duration
	MaxRetryDelay      time.Duration
}

// OptionsFromConfig reads the HTTP_API_* settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AuthMode:           cfg.HTTPAPIAuthMode,
		AuthSecret:         cfg.HTTPAPIAuthSecret,
		AuthHeader:         cfg.HTTPAPIAuthHeader,
		Timeout:            cfg.HTTPAPITimeout,
		InsecureSkipVerify: cfg.HTTPAPIInsecureSkipVerify,
		MaxRetries:         cfg.HTTPAPIMaxRetries,
		RetryDelay:         cfg.HTTPAPIRetryDelay,
		MaxRetryDelay:      cfg.HTTPAPIMaxRetryDelay,
	}
}

// NewRetryClient creates an HTTP client that signs each request and retries transient failures.
func NewRetryClient(opts Options) (*retry.Client, error) {
	authMode := opts.AuthMode
	if authMode == "" {
		authMode = "none"
	}

	client, err := httpclient.NewAuthClient(
		authMode,
		opts.AuthSecret,
		httpclient.WithTimeout(opts.Timeout),
		httpclient.WithHeaderName(opts.AuthHeader),
		httpclient.WithInsecureSkipVerify(opts.InsecureSkipVerify),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(client),
		retry.WithMaxRetries(opts.MaxRetries),
		retry.WithInitialRetryDelay(opts.RetryDelay),
		retry.WithMaxRetryDelay(opts.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
