package jobs

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"LoanPulse/internal/config"
	"LoanPulse/internal/logger"
	"LoanPulse/internal/store"
)

// RetentionConfig controls the upload-session audit purge. History and
// current tables are never touched by retention.
type RetentionConfig struct {
	Schedule      string
	RetentionDays int
	TimeZone      string
}

func NewDefaultRetentionConfig() RetentionConfig {
	return RetentionConfig{
		Schedule:      config.DefaultRetentionSchedule,
		RetentionDays: config.SessionRetentionDays,
		TimeZone:      config.DefaultTimeZone,
	}
}

// RunSessionRetention schedules the nightly purge of upload-session rows
// older than the retention window.
func RunSessionRetention(cfg RetentionConfig, pool *pgxpool.Pool) error {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	pgStore := store.NewPGStore(pool)
	_, err = c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
		purged, err := pgStore.PurgeSessionsBefore(ctx, cutoff)
		if err != nil {
			log.Printf("[Retention] failed to purge upload sessions: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("[Retention] purged %d upload sessions older than %s", purged, cutoff.Format("2006-01-02"))
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit("Session retention purge completed")
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	return nil
}
