package auth

import (
	"context"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
)

// ProviderChain consults its providers in order until one returns a terminal decision.
// The provider list is fixed at construction; a chain is safe for concurrent use.
type ProviderChain struct {
	providers []core.AuthProvider
}

// NewProviderChain builds a chain. The default credential-verifying provider
// must be passed last.
func NewProviderChain(providers ...core.AuthProvider) *ProviderChain {
	p := make([]core.AuthProvider, len(providers))
	copy(p, providers)
	return &ProviderChain{providers: p}
}

// Authenticate returns the first Admitted or Rejected decision, or
// Rejected(ErrNoProviderAvailable) when every provider skips or defers.
func (c *ProviderChain) Authenticate(ctx context.Context, req core.AuthRequest) core.Decision {
	for _, p := range c.providers {
		if !p.Supports(req.Kind) {
			continue
		}
		d := p.Authenticate(ctx, req)
		if !d.IsTerminal() {
			continue
		}
		if d.Provider == "" {
			d.Provider = p.Name()
		}
		return d
	}
	return core.Reject(ErrNoProviderAvailable)
}

// Providers returns the provider names in consultation order.
func (c *ProviderChain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}
