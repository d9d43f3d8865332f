package jobs

import (
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"LoanPulse/internal/logger"
	"LoanPulse/internal/serviceiface"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	retentionConfig := NewDefaultRetentionConfig()
	if s.config != nil {
		if schedule, ok := s.config["retention_schedule"].(string); ok && schedule != "" {
			retentionConfig.Schedule = schedule
		}
		if days, ok := s.config["retention_days"].(int); ok && days > 0 {
			retentionConfig.RetentionDays = days
		}
	}

	if err := RunSessionRetention(retentionConfig, s.db); err != nil {
		return fmt.Errorf("failed to start session retention job: %v", err)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Cron service started with session retention job")
	}
	log.Println("Cron service started: session retention scheduled")
	return nil
}

func (s *CronService) Stop() error {
	log.Println("Cron service stopped.")
	return nil
}
