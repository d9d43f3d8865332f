package ingestion

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of one upload session.
type SessionStatus string

const (
	SessionProcessing          SessionStatus = "processing"
	SessionCompleted           SessionStatus = "completed"
	SessionCompletedWithErrors SessionStatus = "completed_with_errors"
	SessionFailed              SessionStatus = "failed"
)

// UploadSession is the audit record for one complete processing of one
// uploaded file. The id is assigned at session start and never changes; the
// terminal status is written exactly once, after all rows are processed.
type UploadSession struct {
	ID               uuid.UUID
	OriginalFilename string
	FileType         FileType
	RecordCount      int
	Status           SessionStatus
}

// Store is the persistence boundary of the pipeline. History inserts are
// append-only snapshots keyed by (loan, report date, session); current and
// active-event upserts are insert-or-replace keyed by loan id, with per-key
// atomicity supplied by the store itself.
type Store interface {
	InsertForeclosureHistory(ctx context.Context, rec ForeclosureRecord, reportDate string, sessionID uuid.UUID) error
	UpsertActiveForeclosure(ctx context.Context, rec ForeclosureRecord) error
	InsertDailyMetricsHistory(ctx context.Context, rec DailyMetricsRecord, reportDate string, sessionID uuid.UUID) error
	UpsertDailyMetricsCurrent(ctx context.Context, rec DailyMetricsRecord, reportDate string) error
	SaveUploadSession(ctx context.Context, session UploadSession) error
	PurgeSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
