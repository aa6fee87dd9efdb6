// Package reaper runs the audit retention sweeper loop.
package reaper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/meridianbank/bankadmin-api/config"
	"github.com/meridianbank/bankadmin-api/internal/observability/statsd"
)

// AuditPurger is the data operation the sweeper needs.
type AuditPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Runner periodically purges audit entries older than the configured
// retention window. It runs until the context is cancelled.
type Runner struct {
	purger   AuditPurger
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Purger  AuditPurger
	Config  config.RetentionConfig
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// NewRunner creates a new retention sweeper runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Purger == nil {
		return nil, errors.New("audit purger is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := opts.Config
	cfg.Sanitize()

	return &Runner{
		purger:   opts.Purger,
		maxAge:   time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		interval: time.Duration(cfg.IntervalMinutes) * time.Minute,
		logger:   logger,
		metrics:  opts.Metrics,
	}, nil
}

// Run starts the sweep loop. The first sweep happens after one interval,
// not immediately, so restarts do not hammer the database.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting audit retention sweeper",
		"max_age", r.maxAge.String(),
		"interval", r.interval.String(),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "audit retention sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.maxAge)
	deleted, err := r.purger.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		r.logger.ErrorContext(ctx, "audit retention sweep failed", "error", err)
		if r.metrics != nil {
			r.metrics.Count("audit_retention.errors", 1, nil)
		}
		return
	}
	if r.metrics != nil {
		r.metrics.Count("audit_retention.purged", deleted, nil)
	}
	if deleted > 0 {
		r.logger.InfoContext(ctx, "audit retention sweep completed",
			"deleted", deleted,
			"cutoff", cutoff.UTC().Format(time.RFC3339),
		)
	}
}
