package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Hendyvelarius/lapiesbm-sub001/internal/config"
	"github.com/Hendyvelarius/lapiesbm-sub001/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// RetentionConfig controls the nightly purge of aged import batch records.
type RetentionConfig struct {
	Schedule      string
	TimeZone      string
	RetentionDays int
}

func NewDefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		Schedule:      config.DefaultRetentionSchedule,
		TimeZone:      config.DefaultTimeZone,
		RetentionDays: config.DefaultRetentionDays,
	}
}

// RunRetentionScheduler schedules the purge of import_batches rows older than
// the retention window. Current price rows are untouched; only the batch audit
// trail ages out.
func RunRetentionScheduler(cfg *RetentionConfig, db *pgxpool.Pool) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultRetentionSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = config.DefaultRetentionDays
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone for retention scheduler: %v", err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Running import batch retention purge at %s", time.Now().In(loc)))
		if err := purgeAgedBatches(db, cfg.RetentionDays); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Import batch retention purge failed: %v", err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention purge: %v", err)
	}
	c.Start()
	return nil
}

func purgeAgedBatches(db *pgxpool.Pool, retentionDays int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tag, err := db.Exec(ctx, `
		DELETE FROM import_batches
		WHERE created_at < now() - ($1 || ' days')::interval`,
		fmt.Sprintf("%d", retentionDays))
	if err != nil {
		return err
	}
	logger.GlobalLogger.LogAudit(fmt.Sprintf("Import batch retention purge removed %d batches", tag.RowsAffected()))
	return nil
}
