package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/amezghal/careergate/internal/audit"
	"github.com/amezghal/careergate/internal/cache"
	"github.com/amezghal/careergate/pkg/logger"
)

// Cleaner runs the gateway's periodic housekeeping: sweeping expired cache
// entries hourly and trimming the audit trail daily.
type Cleaner struct {
	store         cache.Store
	audit         *audit.Service
	retentionDays int
	cron          *cron.Cron
	log           *zap.Logger
}

// NewCleaner constructs a Cleaner. The audit service may be nil when the
// audit trail feature is disabled.
func NewCleaner(store cache.Store, auditSvc *audit.Service, retentionDays int) (*Cleaner, error) {
	if store == nil {
		return nil, errors.New("maintenance: cache store is required")
	}
	return &Cleaner{
		store:         store,
		audit:         auditSvc,
		retentionDays: retentionDays,
		cron:          cron.New(),
		log:           logger.WithModule("maintenance"),
	}, nil
}

// Start schedules the cleanup jobs and begins the cron loop.
func (c *Cleaner) Start() error {
	if _, err := c.cron.AddFunc("@hourly", func() {
		c.sweepCache(context.Background())
	}); err != nil {
		return err
	}
	if _, err := c.cron.AddFunc("@daily", func() {
		c.trimAudit(context.Background())
	}); err != nil {
		return err
	}

	c.cron.Start()
	c.log.Info("maintenance jobs scheduled",
		zap.Int("audit_retention_days", c.retentionDays))
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (c *Cleaner) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

// RunOnce executes every cleanup job immediately and reports the combined
// outcome. Used at startup so a long-stopped instance catches up.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	var errs error
	errs = multierr.Append(errs, c.sweepCache(ctx))
	errs = multierr.Append(errs, c.trimAudit(ctx))
	return errs
}

func (c *Cleaner) sweepCache(ctx context.Context) error {
	sweeper, ok := c.store.(cache.Sweeper)
	if !ok {
		return nil
	}

	removed, err := sweeper.Sweep(ctx, time.Now())
	if err != nil {
		c.log.Warn("cache sweep failed", zap.Error(err))
		return err
	}
	if removed > 0 {
		c.log.Info("cache sweep complete", zap.Int64("removed", removed))
	}
	return nil
}

func (c *Cleaner) trimAudit(ctx context.Context) error {
	if c.audit == nil || c.retentionDays <= 0 {
		return nil
	}

	removed, err := c.audit.CleanupOlderThan(ctx, c.retentionDays)
	if err != nil {
		c.log.Warn("audit trim failed", zap.Error(err))
		return err
	}
	if removed > 0 {
		c.log.Info("audit trim complete",
			zap.Int64("removed", removed),
			zap.Int("retention_days", c.retentionDays))
	}
	return nil
}
