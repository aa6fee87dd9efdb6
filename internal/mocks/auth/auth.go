package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityLookup = (*MockIdentityLookup)(nil)
	_ ports.AdminRoster    = (*MockAdminRoster)(nil)
	_ ports.AuthProvider   = (*MockAuthProvider)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.RoleMapper     = (StaticRoleMapper{})
)

// ErrNotFound is returned by mocks when an entity is not present.
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

// MockIdentityLookup is an in-memory identity provider for tests.
// Users maps subject id to account record; GetUserByIDFunc overrides all
// behavior when set.
type MockIdentityLookup struct {
	Users           map[string]domainauth.User
	GetUserByIDFunc func(ctx context.Context, id string) (domainauth.User, error)
	Calls           int
}

// NewMockIdentityLookup creates an empty in-memory identity provider.
func NewMockIdentityLookup() *MockIdentityLookup {
	return &MockIdentityLookup{Users: make(map[string]domainauth.User)}
}

func (m *MockIdentityLookup) GetUserByID(ctx context.Context, id string) (domainauth.User, error) {
	m.Calls++
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	user, ok := m.Users[id]
	if !ok {
		return domainauth.User{}, ErrNotFound
	}
	return user, nil
}

// MockAdminRoster is an in-memory admin roster for tests.
type MockAdminRoster struct {
	Profiles     map[string]domainauth.AdminProfile
	FindByIDFunc func(ctx context.Context, id string) (domainauth.AdminProfile, error)
	Calls        int
}

// NewMockAdminRoster creates an empty in-memory roster.
func NewMockAdminRoster() *MockAdminRoster {
	return &MockAdminRoster{Profiles: make(map[string]domainauth.AdminProfile)}
}

func (m *MockAdminRoster) FindByID(ctx context.Context, id string) (domainauth.AdminProfile, error) {
	m.Calls++
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	profile, ok := m.Profiles[id]
	if !ok {
		return domainauth.AdminProfile{}, ErrNotFound
	}
	return profile, nil
}

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL         string
	StatePrefix     string
	NoncePrefix     string
	DefaultIdentity domainauth.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultIdentity: domainauth.Identity{
			UserID:    "mock-staff-1",
			FirstName: "Mock",
			LastName:  "Staff",
			Email:     "mock.staff@example.com",
			Groups:    []string{"bank-support"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	state := fmt.Sprintf("%s-%d", m.StatePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", m.NoncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	identity := m.DefaultIdentity
	identity.ExpiresAt = time.Now().Add(time.Hour)
	return identity, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// StaticRoleMapper maps groups by simple string membership rules.
type StaticRoleMapper struct {
	AdminGroup   string
	SupportGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.SupportGroup != "" && g == m.SupportGroup {
			return domainauth.RoleSupport
		}
	}
	return domainauth.RoleGuest
}
