package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/service.

import (
	"context"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
)

// IdentityLookup resolves a token subject against the identity provider,
// the system of record for whether the session's account still exists.
type IdentityLookup interface {
	// GetUserByID returns the canonical account record for the subject.
	// A missing or invalidated account returns an error; implementations
	// should surface the provider's message so callers can classify it.
	GetUserByID(ctx context.Context, id string) (domainauth.User, error)
}

// AdminRoster answers whether a subject is on the admin roster and with
// what role. Absence of an entry means "not an admin".
type AdminRoster interface {
	FindByID(ctx context.Context, id string) (domainauth.AdminProfile, error)
}

// BeginInput carries inputs for initiating a staff login flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes a staff login flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves staff sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
