package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var foreclosureHeaders = []string{
	"Loan ID", "Investor ID", "Investor Loan Number", "FC Atty POC",
	"FC Atty POC Phone", "FC Jurisdiction", "FC Status", "FC Start Date",
	"FC Closed Date", "FC Closed Reason", "Active FC Days", "Hold FC Days",
	"Total FC Days", "Contested Start Date", "Active Loss Mit", "Last Note Date",
}

var dailyMetricsHeaders = []string{
	"Loan ID", "Investor", "Investor Name", "Inv Loan", "First Name",
	"Last Name", "Address", "City", "State", "Zip", "Prin Bal",
	"Unapplied Bal", "Int Rate", "PI Pmt", "Remg Term", "Origination Date",
	"Org Amount", "Next Pymt Due", "Maturity Date", "Loan Type", "Legal Status",
}

func TestClassifyHeaders(t *testing.T) {
	t.Run("full foreclosure header set", func(t *testing.T) {
		c := ClassifyHeaders(foreclosureHeaders)
		assert.Equal(t, FileTypeForeclosure, c.FileType)
		assert.InDelta(t, 100.0, c.Confidence, 0.01)
		assert.Len(t, c.MatchedHeaders, len(foreclosureHeaders))
	})

	t.Run("full daily metrics header set", func(t *testing.T) {
		c := ClassifyHeaders(dailyMetricsHeaders)
		assert.Equal(t, FileTypeDailyMetrics, c.FileType)
		assert.InDelta(t, 100.0, c.Confidence, 0.01)
	})

	t.Run("snake case aliases match", func(t *testing.T) {
		c := ClassifyHeaders([]string{"loan_id", "fc_jurisdiction", "fc_status", "fc_closed_date", "active_fc_days", "hold_fc_days", "total_fc_days"})
		assert.Equal(t, FileTypeForeclosure, c.FileType)
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		c := ClassifyHeaders([]string{" LOAN id ", "prin BAL", "INT rate", "pi pmt", "remg term", "unapplied bal", "org amount", "maturity date", "legal status"})
		assert.Equal(t, FileTypeDailyMetrics, c.FileType)
	})

	t.Run("unrelated headers are unknown", func(t *testing.T) {
		c := ClassifyHeaders([]string{"Ticker", "Price", "Volume"})
		assert.Equal(t, FileTypeUnknown, c.FileType)
	})

	t.Run("below threshold resolves unknown", func(t *testing.T) {
		c := ClassifyHeaders([]string{"Loan ID", "FC Status"})
		assert.Equal(t, FileTypeUnknown, c.FileType)
		assert.Less(t, c.Confidence, minConfidence)
	})

	t.Run("empty header set", func(t *testing.T) {
		c := ClassifyHeaders(nil)
		assert.Equal(t, FileTypeUnknown, c.FileType)
		assert.Zero(t, c.Confidence)
	})
}

// Adding one more matched expected header never decreases a type's
// confidence.
func TestClassifierConfidenceMonotonic(t *testing.T) {
	var observed []string
	last := 0.0
	for _, h := range foreclosureHeaders {
		observed = append(observed, h)
		c := ClassifyHeaders(observed)
		assert.GreaterOrEqual(t, c.Confidence, last, "confidence dropped after adding %q", h)
		last = c.Confidence
	}
	assert.InDelta(t, 100.0, last, 0.01)
}

func TestClassifierDeterministicTieBreak(t *testing.T) {
	// "Loan ID" alone matches both profiles; the winner must not depend on
	// map iteration order.
	a := ClassifyHeaders([]string{"Loan ID"})
	b := ClassifyHeaders([]string{"Loan ID"})
	assert.Equal(t, a, b)
}
