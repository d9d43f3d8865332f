package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"LoanPulse/internal/config"
)

// Coordinator performs the dual writes for one session and keeps the
// per-row accounting. Every store call is fault-isolated: a rejected write is
// logged and counted, never propagated, so one bad row cannot abort a batch.
type Coordinator struct {
	store    Store
	inserted int
	skipped  int
	errored  int
	messages []string
}

func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// Skip counts a row excluded before persistence (missing loan id, filtered
// jurisdiction). Skips are not errors and never appear in the message sample.
func (c *Coordinator) Skip() {
	c.skipped++
}

// MarkInserted counts one successfully committed unit (a row, or a loan group
// for the grouped file type).
func (c *Coordinator) MarkInserted() {
	c.inserted++
}

// fail logs a rejected write with enough context to diagnose and retains only
// the earliest few messages for user display.
func (c *Coordinator) fail(detail string, err error) {
	c.errored++
	log.Printf("[Ingestion] %s: %v", detail, err)
	if len(c.messages) < config.MaxUploadErrorMessages {
		c.messages = append(c.messages, fmt.Sprintf("%s: %v", detail, err))
	}
}

// AppendForeclosureHistory writes one event snapshot to the append-only
// history table. Callers must not repeat a (loan, date, session) triple.
func (c *Coordinator) AppendForeclosureHistory(ctx context.Context, rec ForeclosureRecord, reportDate string, sessionID uuid.UUID, rowNum int) bool {
	if err := c.store.InsertForeclosureHistory(ctx, rec, reportDate, sessionID); err != nil {
		c.fail(fmt.Sprintf("loan %s row %d history insert", rec.LoanID, rowNum), err)
		return false
	}
	return true
}

// UpsertActiveEvent replaces the derived active-event projection for the
// record's loan.
func (c *Coordinator) UpsertActiveEvent(ctx context.Context, rec ForeclosureRecord) bool {
	if err := c.store.UpsertActiveForeclosure(ctx, rec); err != nil {
		c.fail(fmt.Sprintf("loan %s active event upsert", rec.LoanID), err)
		return false
	}
	return true
}

// CommitMetricsRow performs the history insert plus current upsert for one
// daily-metrics row and counts the row inserted only when both writes land.
func (c *Coordinator) CommitMetricsRow(ctx context.Context, rec DailyMetricsRecord, reportDate string, sessionID uuid.UUID, rowNum int) bool {
	if err := c.store.InsertDailyMetricsHistory(ctx, rec, reportDate, sessionID); err != nil {
		c.fail(fmt.Sprintf("Row %d", rowNum), err)
		return false
	}
	if err := c.store.UpsertDailyMetricsCurrent(ctx, rec, reportDate); err != nil {
		c.fail(fmt.Sprintf("Row %d", rowNum), err)
		return false
	}
	c.inserted++
	return true
}

// Counts returns the {inserted, skipped, errored} totals accumulated so far.
func (c *Coordinator) Counts() (inserted, skipped, errored int) {
	return c.inserted, c.skipped, c.errored
}

// ErrorMessages returns the bounded earliest-error sample for user display.
func (c *Coordinator) ErrorMessages() []string {
	return c.messages
}
