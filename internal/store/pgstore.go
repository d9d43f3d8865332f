package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"LoanPulse/internal/ingestion"
)

// PGStore is the Postgres implementation of the ingestion Store. History
// tables are append-only; current/active tables rely on ON CONFLICT DO UPDATE
// keyed by loan_id for their at-most-one-winner semantics.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// numericArg renders a nullable decimal as a SQL argument.
func numericArg(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.StringFixed(4)
}

func (s *PGStore) InsertForeclosureHistory(ctx context.Context, rec ingestion.ForeclosureRecord, reportDate string, sessionID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO foreclosure_events_history (
			upload_session_id, report_date, loan_id, investor_id, investor_loan_number,
			fc_atty_poc, fc_atty_poc_phone, fc_atty_poc_email, fc_jurisdiction, fc_status,
			fc_start_date, fc_closed_date, fc_closed_reason, active_fc_days, hold_fc_days,
			total_fc_days, contested_start_date, contested_reason, contested_summary,
			active_loss_mit, active_loss_mit_start_date, active_loss_mit_reason,
			last_note_date, last_note, source_filename, data_issues
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)`,
		sessionID, reportDate, rec.LoanID, rec.InvestorID, rec.InvestorLoanNumber,
		rec.AttyPOC, rec.AttyPOCPhone, rec.AttyPOCEmail, rec.Jurisdiction, rec.Status,
		rec.StartDate, rec.ClosedDate, rec.ClosedReason, rec.ActiveFCDays, rec.HoldFCDays,
		rec.TotalFCDays, rec.ContestedStartDate, rec.ContestedReason, rec.ContestedSummary,
		rec.ActiveLossMit, rec.LossMitStartDate, rec.LossMitReason,
		rec.LastNoteDate, rec.LastNote, rec.SourceFilename, rec.DataIssues,
	)
	return err
}

func (s *PGStore) UpsertActiveForeclosure(ctx context.Context, rec ingestion.ForeclosureRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO foreclosure_events_active (
			loan_id, fc_jurisdiction, fc_status, fc_start_date, fc_closed_date,
			fc_closed_reason, active_fc_days, hold_fc_days, total_fc_days,
			source_filename, data_issues
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (loan_id) DO UPDATE SET
			fc_jurisdiction = EXCLUDED.fc_jurisdiction,
			fc_status = EXCLUDED.fc_status,
			fc_start_date = EXCLUDED.fc_start_date,
			fc_closed_date = EXCLUDED.fc_closed_date,
			fc_closed_reason = EXCLUDED.fc_closed_reason,
			active_fc_days = EXCLUDED.active_fc_days,
			hold_fc_days = EXCLUDED.hold_fc_days,
			total_fc_days = EXCLUDED.total_fc_days,
			source_filename = EXCLUDED.source_filename,
			data_issues = EXCLUDED.data_issues,
			updated_at = now()`,
		rec.LoanID, rec.Jurisdiction, rec.Status, rec.StartDate, rec.ClosedDate,
		rec.ClosedReason, rec.ActiveFCDays, rec.HoldFCDays, rec.TotalFCDays,
		rec.SourceFilename, rec.DataIssues,
	)
	return err
}

func (s *PGStore) InsertDailyMetricsHistory(ctx context.Context, rec ingestion.DailyMetricsRecord, reportDate string, sessionID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_metrics_history (
			upload_session_id, report_date, loan_id, investor, investor_name, inv_loan,
			first_name, last_name, address, city, state, zip, prin_bal, unapplied_bal,
			int_rate, pi_pmt, remg_term, origination_date, org_term, org_amount, lien_pos,
			next_pymt_due, last_pymt_received, first_pymt_due, maturity_date, loan_type,
			legal_status, warning, pymt_method, draft_day, spoc, source_filename, data_issues
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33
		)`,
		sessionID, reportDate, rec.LoanID, rec.Investor, rec.InvestorName, rec.InvLoan,
		rec.FirstName, rec.LastName, rec.Address, rec.City, rec.State, rec.Zip,
		numericArg(rec.PrinBal), numericArg(rec.UnappliedBal),
		numericArg(rec.IntRate), numericArg(rec.PIPmt), rec.RemgTerm,
		rec.OriginationDate, rec.OrgTerm, numericArg(rec.OrgAmount), rec.LienPos,
		rec.NextPymtDue, rec.LastPymtReceived, rec.FirstPymtDue, rec.MaturityDate,
		rec.LoanType, rec.LegalStatus, rec.Warning, rec.PymtMethod, rec.DraftDay,
		rec.SPOC, rec.SourceFilename, rec.DataIssues,
	)
	return err
}

func (s *PGStore) UpsertDailyMetricsCurrent(ctx context.Context, rec ingestion.DailyMetricsRecord, reportDate string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_metrics_current (
			loan_id, report_date, investor, investor_name, inv_loan, first_name, last_name,
			address, city, state, zip, prin_bal, unapplied_bal, int_rate, pi_pmt, remg_term,
			origination_date, org_term, org_amount, lien_pos, next_pymt_due,
			last_pymt_received, first_pymt_due, maturity_date, loan_type, legal_status,
			warning, pymt_method, draft_day, spoc, source_filename, data_issues
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32
		)
		ON CONFLICT (loan_id) DO UPDATE SET
			report_date = EXCLUDED.report_date,
			investor = EXCLUDED.investor,
			investor_name = EXCLUDED.investor_name,
			inv_loan = EXCLUDED.inv_loan,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			prin_bal = EXCLUDED.prin_bal,
			unapplied_bal = EXCLUDED.unapplied_bal,
			int_rate = EXCLUDED.int_rate,
			pi_pmt = EXCLUDED.pi_pmt,
			remg_term = EXCLUDED.remg_term,
			origination_date = EXCLUDED.origination_date,
			org_term = EXCLUDED.org_term,
			org_amount = EXCLUDED.org_amount,
			lien_pos = EXCLUDED.lien_pos,
			next_pymt_due = EXCLUDED.next_pymt_due,
			last_pymt_received = EXCLUDED.last_pymt_received,
			first_pymt_due = EXCLUDED.first_pymt_due,
			maturity_date = EXCLUDED.maturity_date,
			loan_type = EXCLUDED.loan_type,
			legal_status = EXCLUDED.legal_status,
			warning = EXCLUDED.warning,
			pymt_method = EXCLUDED.pymt_method,
			draft_day = EXCLUDED.draft_day,
			spoc = EXCLUDED.spoc,
			source_filename = EXCLUDED.source_filename,
			data_issues = EXCLUDED.data_issues,
			updated_at = now()`,
		rec.LoanID, reportDate, rec.Investor, rec.InvestorName, rec.InvLoan,
		rec.FirstName, rec.LastName, rec.Address, rec.City, rec.State, rec.Zip,
		numericArg(rec.PrinBal), numericArg(rec.UnappliedBal), numericArg(rec.IntRate),
		numericArg(rec.PIPmt), rec.RemgTerm, rec.OriginationDate, rec.OrgTerm,
		numericArg(rec.OrgAmount), rec.LienPos, rec.NextPymtDue, rec.LastPymtReceived,
		rec.FirstPymtDue, rec.MaturityDate, rec.LoanType, rec.LegalStatus, rec.Warning,
		rec.PymtMethod, rec.DraftDay, rec.SPOC, rec.SourceFilename, rec.DataIssues,
	)
	return err
}

func (s *PGStore) SaveUploadSession(ctx context.Context, session ingestion.UploadSession) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO upload_sessions (id, original_filename, file_type, record_count, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			record_count = EXCLUDED.record_count,
			status = EXCLUDED.status,
			updated_at = now()`,
		session.ID, session.OriginalFilename, string(session.FileType),
		session.RecordCount, string(session.Status),
	)
	return err
}

// PurgeSessionsBefore removes upload-session audit rows older than cutoff.
// History rows are never touched.
func (s *PGStore) PurgeSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM upload_sessions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
