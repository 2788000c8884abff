package auth

import (
	"context"
	"log"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
)

// ProviderBypass is the name reported by BypassAuthProvider.
const ProviderBypass = "bypass"

// BypassAuthProvider admits allow-listed operator accounts without checking
// the presented credential. Identifiers outside the allow-list are deferred.
type BypassAuthProvider struct {
	directory core.UserDirectory
	allowList AllowList
}

// NewBypassAuthProvider creates a bypass provider. It must precede the
// default credential provider in the chain.
func NewBypassAuthProvider(directory core.UserDirectory, allowList AllowList) *BypassAuthProvider {
	return &BypassAuthProvider{directory: directory, allowList: allowList}
}

func (p *BypassAuthProvider) Name() string {
	return ProviderBypass
}

func (p *BypassAuthProvider) Supports(kind core.RequestKind) bool {
	return kind == core.KindUsernamePassword
}

// Authenticate claims allow-listed identifiers. A claimed identifier that the
// directory cannot resolve is rejected rather than deferred.
func (p *BypassAuthProvider) Authenticate(ctx context.Context, req core.AuthRequest) core.Decision {
	if !p.allowList.Contains(req.Identifier) {
		return core.Defer()
	}

	user, err := p.directory.FindUserByIdentifier(ctx, req.Identifier)
	if err != nil {
		log.Printf("[Bypass] lookup failed for %s: %v", req.Identifier, err)
		return core.Reject(err)
	}
	if user == nil {
		return core.Reject(ErrUserNotFound)
	}

	return core.Admit(&core.Principal{
		User:        *user,
		Authorities: user.Authorities,
		Provider:    ProviderBypass,
	})
}
