package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/meridianbank/bankadmin-api/config"
	"github.com/meridianbank/bankadmin-api/internal/adapters/reaper"
	"github.com/meridianbank/bankadmin-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting bankadmin api",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"auth_mode", cfg.Auth.Mode,
		"dev", cfg.IsDev,
	)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	container, err := bootstrap.BuildServices(bootstrap.BuildServicesConfig{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := container.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close services failed", "error", cerr)
		}
	}()

	return serve(ctx, &cfg, container, logger)
}

// serve runs the HTTP server and background workers until a shutdown
// signal arrives.
func serve(
	ctx context.Context,
	cfg *config.AppConfig,
	container *bootstrap.ServiceContainer,
	logger *slog.Logger,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := bootstrap.StartHTTPServer(bootstrap.HTTPServerConfig{
		Config:   cfg,
		Services: container,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Retention.Enabled {
		sweeper, err := reaper.NewRunner(reaper.RunnerOptions{
			Purger:  container.AuditRepo,
			Config:  cfg.Retention,
			Logger:  logger,
			Metrics: container.Metrics,
		})
		if err != nil {
			return fmt.Errorf("build audit retention sweeper: %w", err)
		}
		g.Go(func() error {
			if runErr := sweeper.Run(gctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return bootstrap.ShutdownHTTPServer(context.Background(), server, logger)
	})

	return g.Wait()
}

// initInfrastructure connects shared dependencies used by the service
// runtime. Redis is optional; when no URI is configured the staff login
// surface is disabled.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	db, err := bootstrap.ConnectDB(cfg.Postgres, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	if cfg.Redis.URI == "" {
		logger.InfoContext(ctx, "redis not configured; staff login disabled")
		return db, nil, nil
	}

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis, logger)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
			return nil, nil, fmt.Errorf("connect redis: %w", errors.Join(err, fmt.Errorf("close database: %w", cerr)))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, redisClient, nil
}
