package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/meridianbank/bankadmin-api/config"
	"github.com/meridianbank/bankadmin-api/internal/data"
	"github.com/meridianbank/bankadmin-api/internal/observability/statsd"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// ServiceContainer holds the constructed services shared by the HTTP
// server and the admin CLI.
type ServiceContainer struct {
	Gate          *service.AdminGate
	Auth          *service.AuthService
	Accounts      *service.AccountService
	Transactions  *service.TransactionService
	Verifications *service.VerificationService
	Wires         *service.WireService
	Wallets       *service.WalletService
	Audit         *service.AuditService
	Roster        *service.RosterService
	AuditRepo     *data.AuditRepo
	Metrics       *statsd.Client
}

// BuildServicesConfig groups inputs for BuildServices.
type BuildServicesConfig struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices constructs repositories and services from open connections.
func BuildServices(cfg BuildServicesConfig) (*ServiceContainer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: appCfg.Observability.Metrics.IsEnabled(),
		Address: appCfg.Observability.Metrics.StatsdAddress,
		Prefix:  "bankadmin",
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build statsd client: %w", err)
	}

	adminRepo := data.NewAdminRepo(cfg.DB)
	auditRepo := data.NewAuditRepo(cfg.DB)

	gate, err := BuildAdminGate(AdminGateConfig{
		Identity: appCfg.Auth.Identity,
		Roster:   adminRepo,
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build admin gate: %w", err)
	}

	container := &ServiceContainer{
		Gate: gate,
		Auth: BuildAuthService(AuthConfig{
			Auth:        appCfg.Auth,
			RedisClient: cfg.RedisClient,
			Logger:      logger,
		}),
		Accounts: service.NewAccountService(service.AccountServiceOptions{
			AccountRepo: data.NewAccountRepo(cfg.DB),
			AuditRepo:   auditRepo,
			Logger:      logger,
		}),
		Transactions: service.NewTransactionService(service.TransactionServiceOptions{
			TransactionRepo: data.NewTransactionRepo(cfg.DB),
			AuditRepo:       auditRepo,
			Logger:          logger,
		}),
		Verifications: service.NewVerificationService(service.VerificationServiceOptions{
			VerificationRepo: data.NewVerificationRepo(cfg.DB),
			AuditRepo:        auditRepo,
			Logger:           logger,
		}),
		Wires: service.NewWireService(service.WireServiceOptions{
			WireRepo:  data.NewWireRepo(cfg.DB),
			AuditRepo: auditRepo,
			Logger:    logger,
		}),
		Wallets: service.NewWalletService(service.WalletServiceOptions{
			WalletRepo: data.NewWalletRepo(cfg.DB),
			AuditRepo:  auditRepo,
			Logger:     logger,
		}),
		Audit: service.NewAuditService(service.AuditServiceOptions{
			AuditRepo: auditRepo,
			Logger:    logger,
		}),
		Roster: service.NewRosterService(service.RosterServiceOptions{
			RosterRepo: adminRepo,
			AuditRepo:  auditRepo,
			Logger:     logger,
		}),
		AuditRepo: auditRepo,
		Metrics:   metrics,
	}

	return container, nil
}

// Close releases resources held by the container.
func (c *ServiceContainer) Close() error {
	if c == nil || c.Metrics == nil {
		return nil
	}
	return c.Metrics.Close()
}
