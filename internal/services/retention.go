package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/routineplus/backend/internal/infrastructure/drift"
	"github.com/routineplus/backend/repository"
)

// SweeperConfig controls the retention policy applied on each sweep.
type SweeperConfig struct {
	AuditWindow    time.Duration
	DriftRetention time.Duration
	Interval       time.Duration
}

// RetentionSweeper enforces the time-bounded retention of audit records
// and drift-journal entries. Records become eligible for removal once
// their age exceeds the configured window; the sweeper is the mechanism
// that actually removes them.
type RetentionSweeper struct {
	audit   repository.AuditRepository
	journal *drift.Journal
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     SweeperConfig
}

func NewRetentionSweeper(audit repository.AuditRepository, journal *drift.Journal, logger *zap.Logger, cfg SweeperConfig) *RetentionSweeper {
	if cfg.AuditWindow <= 0 {
		cfg.AuditWindow = 864000 * time.Second
	}
	if cfg.DriftRetention <= 0 {
		cfg.DriftRetention = 30 * 24 * time.Hour
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rs := &RetentionSweeper{
		audit:   audit,
		journal: journal,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = rs.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := rs.Sweep(ctx); err != nil {
			rs.logger.Error("retention sweep failed", zap.Error(err))
		}
	})

	return rs
}

// Start launches the cron scheduler.
func (rs *RetentionSweeper) Start() {
	if rs == nil || rs.cron == nil {
		return
	}
	rs.cron.Start()
	rs.logger.Info("retention sweeper started",
		zap.Duration("audit_window", rs.cfg.AuditWindow),
		zap.Duration("interval", rs.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (rs *RetentionSweeper) Stop(ctx context.Context) {
	if rs == nil || rs.cron == nil {
		return
	}
	stopCtx := rs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	rs.logger.Info("retention sweeper stopped")
}

// Sweep purges expired audit records and stale drift entries once.
func (rs *RetentionSweeper) Sweep(ctx context.Context) error {
	now := time.Now().UTC()

	if rs.audit != nil {
		purged, err := rs.audit.PurgeExpired(ctx, now.Add(-rs.cfg.AuditWindow))
		if err != nil {
			return err
		}
		if purged > 0 {
			rs.logger.Info("expired audit records purged", zap.Int64("count", purged))
		}
	}

	if rs.journal != nil {
		if err := rs.journal.Cleanup(now.Add(-rs.cfg.DriftRetention)); err != nil {
			rs.logger.Warn("drift journal cleanup failed", zap.Error(err))
		}
	}
	return nil
}
