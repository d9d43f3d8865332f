package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Whole-file failures. These abort before any row is persisted and are the
// only errors that cross the session boundary.
var (
	ErrNoData          = errors.New("no data found in the uploaded file")
	ErrUnknownFileType = errors.New("unable to identify file type from column headers")
)

// Result is the structured outcome of one ingestion session, returned to the
// transport layer for the response payload.
type Result struct {
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	FileType     FileType  `json:"fileType"`
	Confidence   float64   `json:"confidence"`
	RecordCount  int       `json:"record_count"`
	SkippedCount int       `json:"skipped_count"`
	ErrorCount   int       `json:"error_count"`
	TotalRecords int       `json:"total_records"`
	ReportDate   string    `json:"report_date"`
	SessionID    uuid.UUID `json:"upload_session_id"`
	Errors       []string  `json:"errors"`
}

// Pipeline runs complete ingestion sessions against one Store. A single
// session is strictly sequential: rows are mapped, grouped and persisted in
// file order, one at a time. Concurrent sessions share only the store.
type Pipeline struct {
	store Store
	now   func() time.Time
}

func NewPipeline(store Store) *Pipeline {
	return &Pipeline{store: store, now: time.Now}
}

// Ingest processes one uploaded file end to end: sniff, parse, classify, map,
// group, persist, and record the session audit row with its terminal status.
func (p *Pipeline) Ingest(ctx context.Context, fileBytes []byte, originalFilename string) (Result, error) {
	sessionID := uuid.New()
	format := SniffFormat(fileBytes)
	log.Printf("[Ingestion] %s: detected container format %s", originalFilename, format)

	headers, rows, err := ParseTabular(fileBytes, format)
	if err != nil {
		p.saveFailedSession(ctx, sessionID, originalFilename, FileTypeUnknown)
		return Result{}, fmt.Errorf("failed to parse upload: %w", err)
	}
	if len(rows) == 0 {
		p.saveFailedSession(ctx, sessionID, originalFilename, FileTypeUnknown)
		return Result{}, ErrNoData
	}

	detection := ClassifyHeaders(headers)
	log.Printf("[Ingestion] %s: detected %s (%.1f%% confidence, %d headers matched)",
		originalFilename, detection.FileType, detection.Confidence, len(detection.MatchedHeaders))
	if detection.FileType == FileTypeUnknown {
		p.saveFailedSession(ctx, sessionID, originalFilename, FileTypeUnknown)
		return Result{}, fmt.Errorf("%w (best confidence %.1f%%)", ErrUnknownFileType, detection.Confidence)
	}

	reportDate := ReportDateFromFilename(originalFilename, p.now())
	log.Printf("[Ingestion] %s: processing %d rows as %s with report date %s",
		originalFilename, len(rows), detection.FileType, reportDate)

	coord := NewCoordinator(p.store)
	var message string
	switch detection.FileType {
	case FileTypeForeclosure:
		message = p.processForeclosure(ctx, coord, rows, originalFilename, reportDate, sessionID)
	case FileTypeDailyMetrics:
		message = p.processDailyMetrics(ctx, coord, rows, originalFilename, reportDate, sessionID)
	}

	inserted, skipped, errored := coord.Counts()
	status := SessionCompleted
	switch {
	case errored > 0 && inserted > 0:
		status = SessionCompletedWithErrors
	case errored > 0:
		// nothing committed, every write was rejected
		status = SessionFailed
	}
	session := UploadSession{
		ID:               sessionID,
		OriginalFilename: originalFilename,
		FileType:         detection.FileType,
		RecordCount:      len(rows),
		Status:           status,
	}
	if err := p.store.SaveUploadSession(ctx, session); err != nil {
		log.Printf("[Ingestion] %s: failed to save upload session %s: %v", originalFilename, sessionID, err)
	}

	return Result{
		Status:       "success",
		Message:      message,
		FileType:     detection.FileType,
		Confidence:   detection.Confidence,
		RecordCount:  inserted,
		SkippedCount: skipped,
		ErrorCount:   errored,
		TotalRecords: len(rows),
		ReportDate:   reportDate,
		SessionID:    sessionID,
		Errors:       coord.ErrorMessages(),
	}, nil
}

// saveFailedSession records the audit row for a whole-file failure. Best
// effort: the caller is already returning the real error.
func (p *Pipeline) saveFailedSession(ctx context.Context, sessionID uuid.UUID, filename string, fileType FileType) {
	session := UploadSession{
		ID:               sessionID,
		OriginalFilename: filename,
		FileType:         fileType,
		Status:           SessionFailed,
	}
	if err := p.store.SaveUploadSession(ctx, session); err != nil {
		log.Printf("[Ingestion] %s: failed to save failed session %s: %v", filename, sessionID, err)
	}
}

// processForeclosure handles the multi-event-per-loan file type: rows are
// mapped, jurisdiction-filtered and grouped by loan; every retained event is
// appended to history and each group's active event replaces the loan's
// projection. The inserted count is loan groups, matching the user-facing
// summary.
func (p *Pipeline) processForeclosure(ctx context.Context, coord *Coordinator, rows []RawRow, filename, reportDate string, sessionID uuid.UUID) string {
	var records []ForeclosureRecord
	for i, row := range rows {
		rec, ok := MapForeclosureRow(row, filename)
		if !ok {
			log.Printf("[Ingestion] row %d: skipping foreclosure record with missing loan id", i+1)
			coord.Skip()
			continue
		}
		records = append(records, rec)
	}

	res := ResolveLoanGroups(records)
	for i := 0; i < res.Skipped; i++ {
		coord.Skip()
	}
	log.Printf("[Ingestion] %s: %d loans across %d retained foreclosure records",
		filename, len(res.Groups), len(records)-res.Skipped)

	rowNum := 0
	for _, group := range res.Groups {
		for _, event := range group.Events {
			rowNum++
			coord.AppendForeclosureHistory(ctx, event, reportDate, sessionID, rowNum)
		}
		if group.Active != nil {
			coord.UpsertActiveEvent(ctx, *group.Active)
		} else {
			log.Printf("[Ingestion] no active foreclosure for loan %s (all events closed)", group.LoanID)
		}
		coord.MarkInserted()
	}

	inserted, skipped, errored := coord.Counts()
	return fmt.Sprintf("Successfully processed %d loans with foreclosure data (%d total records, %d skipped, %d errors).",
		inserted, len(records)-res.Skipped, skipped, errored)
}

// processDailyMetrics handles the one-row-per-loan file type with the
// history-plus-current dual write per row.
func (p *Pipeline) processDailyMetrics(ctx context.Context, coord *Coordinator, rows []RawRow, filename, reportDate string, sessionID uuid.UUID) string {
	for i, row := range rows {
		rec, ok := MapDailyMetricsRow(row, filename)
		if !ok {
			log.Printf("[Ingestion] row %d: skipping daily metrics record with missing loan id", i+1)
			coord.Skip()
			continue
		}
		coord.CommitMetricsRow(ctx, rec, reportDate, sessionID, i+1)
	}

	inserted, skipped, errored := coord.Counts()
	return fmt.Sprintf("Successfully imported %d of %d daily metrics records (%d skipped, %d errors).",
		inserted, len(rows), skipped, errored)
}
