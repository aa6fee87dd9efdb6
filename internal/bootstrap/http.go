package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/meridianbank/bankadmin-api/config"
	httpx "github.com/meridianbank/bankadmin-api/internal/http"
)

// HTTPServerConfig contains dependencies for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer builds the router and starts serving in a goroutine.
// Returns the server for graceful shutdown.
func StartHTTPServer(cfg HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	var services httpx.RouterServices
	if cfg.Services != nil {
		services = httpx.RouterServices{
			Gate:          cfg.Services.Gate,
			Accounts:      cfg.Services.Accounts,
			Transactions:  cfg.Services.Transactions,
			Verifications: cfg.Services.Verifications,
			Wires:         cfg.Services.Wires,
			Wallets:       cfg.Services.Wallets,
			Audit:         cfg.Services.Audit,
			Roster:        cfg.Services.Roster,
			CookieDomain:  appCfg.HTTP.CookieDomain,
			Logger:        logger,
		}
		if cfg.Services.Auth != nil {
			services.Auth = cfg.Services.Auth
		}
		if cfg.Services.Metrics != nil {
			services.Metrics = cfg.Services.Metrics
		}
	}

	handler := httpx.NewRouter(services)

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(appCfg.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(appCfg.HTTP.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
