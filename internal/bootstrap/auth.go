package bootstrap

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridianbank/bankadmin-api/config"
	"github.com/meridianbank/bankadmin-api/internal/adapters/authroles"
	"github.com/meridianbank/bankadmin-api/internal/adapters/devauth"
	"github.com/meridianbank/bankadmin-api/internal/adapters/identity"
	"github.com/meridianbank/bankadmin-api/internal/adapters/oidc"
	redisadapter "github.com/meridianbank/bankadmin-api/internal/adapters/redis"
	"github.com/meridianbank/bankadmin-api/internal/observability/statsd"
	"github.com/meridianbank/bankadmin-api/internal/ports"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// AdminGateConfig groups dependencies for building the bearer-credential gate.
type AdminGateConfig struct {
	Identity config.IdentityProviderConfig
	Roster   ports.AdminRoster
	Metrics  *statsd.Client
	Logger   *slog.Logger
}

// BuildAdminGate constructs the admin gate from the identity provider
// client and the roster repository.
func BuildAdminGate(cfg AdminGateConfig) (*service.AdminGate, error) {
	lookup, err := identity.NewClient(identity.Config{
		BaseURL:    cfg.Identity.BaseURL,
		ServiceKey: cfg.Identity.ServiceKey,
		Timeout:    time.Duration(cfg.Identity.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	return service.NewAdminGate(service.AdminGateOptions{
		Identity: lookup,
		Roster:   cfg.Roster,
		Logger:   cfg.Logger,
		Metrics:  cfg.Metrics,
	}), nil
}

// AuthConfig contains configuration for the staff login service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates the staff login service for the configured auth
// mode. Returns nil when auth is not configured or configuration is
// incomplete; the API then runs without the browser login surface.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("staff login disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	sessionStore := redisadapter.NewSessionStore(cfg.RedisClient)
	roleMapper := authroles.StaticRoleMapper{
		AdminGroup:   cfg.Auth.AdminGroup,
		SupportGroup: cfg.Auth.SupportGroup,
	}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, sessionStore, roleMapper)
	case config.AuthModeOAuth:
		return buildOAuthService(cfg, sessionStore, roleMapper)
	default:
		return nil
	}
}

func buildDevAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.StaticRoleMapper,
) *service.AuthService {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID: cfg.Auth.DevAuth.UserID,
		Email:  cfg.Auth.DevAuth.Email,
		Groups: cfg.Auth.DevAuth.Groups,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, staff login disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Roles:    roleMapper,
	})
}

func buildOAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.StaticRoleMapper,
) *service.AuthService {
	oauth := cfg.Auth.OAuth
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("oauth mode selected but required config missing; staff login disabled",
				"discovery_url_empty", oauth.DiscoveryURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
		LogoutURL:    oauth.LogoutURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, staff login disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Roles:    roleMapper,
	})
}
