package auth

// Package auth contains domain-level types for authentication, the admin
// gate, and staff sessions. It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSupport Role = "support"
	RoleGuest   Role = "guest"
)

// DecodedIdentity is the unverified payload extracted from a bearer
// credential. Decoding is not verification: the subject must still be
// resolved against the identity provider before it is trusted.
type DecodedIdentity struct {
	Subject   string    // stable account identifier (JWT "sub")
	ExpiresAt time.Time // token expiry claim, zero if absent
}

// User is the canonical account record held by the identity provider,
// read-only from this service's perspective.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_sign_in_at"`
}

// AdminProfile is a row in the admin roster. Existence of the row is what
// grants admin privileges; absence means "not an admin".
type AdminProfile struct {
	ID        string    `json:"id"         db:"id"`
	Email     string    `json:"email"      db:"email"`
	Role      Role      `json:"role"       db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AuthContext is the success result of the admin gate: the resolved
// identity plus roster entry, handed to handlers for audit writes.
type AuthContext struct {
	AdminID string
	Email   string
	User    User
	Profile AdminProfile
}

// Identity represents the authenticated principal returned by an IdP
// during staff browser login. Adapters map provider-specific claims into
// this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., samAccountName or sub)
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the server-side record we persist for an authenticated staff
// member. ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }
