package loans

import (
	"database/sql"

	"LoanPulse/internal/serviceiface"
)

type LoansService struct {
	config map[string]interface{}
	db     *sql.DB
}

func NewLoansService(cfg map[string]interface{}, db *sql.DB) serviceiface.Service {
	return &LoansService{config: cfg, db: db}
}

func (s *LoansService) Name() string {
	return "loans"
}

func (s *LoansService) Start() error {
	go StartLoansService(s.db)
	return nil
}

func (s *LoansService) Stop() error {
	return nil
}
