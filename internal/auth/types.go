package auth

import "github.com/jiheejiheekim/monarch-Mobile/internal/core"

// Aliases (not new types) so handlers and services can speak in auth terms
// while providers implement the core interfaces directly.
type (
	Request      = core.AuthRequest
	Decision     = core.Decision
	Principal    = core.Principal
	UserRecord   = core.UserRecord
	AuthoritySet = core.AuthoritySet
)

// Authority tokens granted on admission.
const (
	AuthorityUser  = "ROLE_USER"
	AuthorityAdmin = "ROLE_ADMIN"
)
