package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for staff browser login.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for staff login.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// IdentityProviderConfig configures the identity provider admin API used by
// the admin gate to resolve token subjects to canonical accounts.
type IdentityProviderConfig struct {
	// BaseURL is the root of the identity provider's admin API
	// (e.g., "https://identity.internal.example.com").
	BaseURL string `env:"BASE_URL"`

	// ServiceKey is the server-side key used to authenticate admin API calls.
	// Never exposed to browsers.
	ServiceKey string `env:"SERVICE_KEY"`

	// TimeoutSeconds bounds each lookup call.
	TimeoutSeconds int `env:"TIMEOUT_SECONDS" envDefault:"10"`
}

// OAuthConfig contains OAuth/OIDC configuration for staff login.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"bankadmin"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"bankadmin"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string   `env:"USER_ID" envDefault:"dev-admin"`
	Email  string   `env:"EMAIL"   envDefault:"dev-admin@example.com"`
	Groups []string `env:"GROUPS"  envDefault:"bank-admins"          envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which staff login provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Identity provider admin API (used by the admin gate).
	Identity IdentityProviderConfig `envPrefix:"IDENTITY_"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminGroup is the directory group DN for admin staff.
	AdminGroup string `env:"ADMIN_GROUP" envDefault:"bank-admins"`

	// SupportGroup is the directory group DN for support staff.
	SupportGroup string `env:"SUPPORT_GROUP" envDefault:"bank-support"`
}

// Sanitize applies guardrails to auth configuration values.
func (c *AuthConfig) Sanitize() {
	c.Identity.BaseURL = strings.TrimRight(strings.TrimSpace(c.Identity.BaseURL), "/")
	c.Identity.ServiceKey = strings.TrimSpace(c.Identity.ServiceKey)
	if c.Identity.TimeoutSeconds <= 0 {
		c.Identity.TimeoutSeconds = 10
	}
}
