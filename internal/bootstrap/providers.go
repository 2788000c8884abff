package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/client"
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
)

// initializeCredentialVerifier returns the verifier selected by AUTH_MODE
func initializeCredentialVerifier(cfg *config.Config) (core.CredentialVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeHTTPAPI:
		authRetryClient, err := client.NewRetryClient(client.OptionsFromConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP API auth client: %w", err)
		}
		log.Printf("HTTP API authentication enabled: %s", cfg.HTTPAPIURL)
		return auth.NewHTTPAPIAuthProvider(cfg.HTTPAPIURL, authRetryClient), nil
	default:
		return auth.NewLocalAuthProvider(), nil
	}
}

// initializeProviderChain builds bypass -> credential over the store directory
func initializeProviderChain(cfg *config.Config, db *store.Store) (*auth.ProviderChain, error) {
	verifier, err := initializeCredentialVerifier(cfg)
	if err != nil {
		return nil, err
	}

	allowList := auth.NewAllowList(cfg.BypassUsers...)
	directory := auth.NewStoreDirectory(db)

	chain := auth.NewProviderChain(
		auth.NewBypassAuthProvider(directory, allowList),
		auth.NewCredentialAuthProvider(
			directory,
			auth.NewLockoutPolicy(allowList, cfg.LockoutThreshold),
			verifier,
		),
	)
	log.Printf(
		"Authentication chain: %v (lockout threshold: %d, bypass identifiers: %d)",
		chain.Providers(),
		cfg.LockoutThreshold,
		allowList.Len(),
	)
	if allowList.Len() > 0 {
		log.Printf("WARNING: credential check and lockout are skipped for: %s",
			strings.Join(allowList.Identifiers(), ", "))
	}
	return chain, nil
}
