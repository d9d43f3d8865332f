package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fcEvent(loanID, jurisdiction, closedDate string) ForeclosureRecord {
	rec := ForeclosureRecord{LoanID: loanID}
	if jurisdiction != "" {
		rec.Jurisdiction = &jurisdiction
	}
	if closedDate != "" {
		rec.ClosedDate = &closedDate
	}
	return rec
}

func TestResolveLoanGroupsJurisdictionFilter(t *testing.T) {
	records := []ForeclosureRecord{
		fcEvent("L1", "Judicial", ""),
		fcEvent("L2", "NonJudicial", ""),
		fcEvent("L3", "Bankruptcy Ch7", ""),
		fcEvent("L4", "", ""),
	}
	res := ResolveLoanGroups(records)
	assert.Len(t, res.Groups, 2)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, "L1", res.Groups[0].LoanID)
	assert.Equal(t, "L2", res.Groups[1].LoanID)
}

func TestResolveLoanGroupsActiveSelection(t *testing.T) {
	// L1 has a closed event followed by an open one; the open event is active
	// and both stay in history.
	closed := fcEvent("L1", "Judicial", "2023-06-01")
	closed.Status = cleanText("Closed")
	open := fcEvent("L1", "Judicial", "")
	open.Status = cleanText("Active")

	res := ResolveLoanGroups([]ForeclosureRecord{closed, open})
	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Len(t, g.Events, 2)
	require.NotNil(t, g.Active)
	assert.Nil(t, g.Active.ClosedDate)
	require.NotNil(t, g.Active.Status)
	assert.Equal(t, "Active", *g.Active.Status)
}

func TestResolveLoanGroupsFirstOpenWins(t *testing.T) {
	first := fcEvent("L1", "Judicial", "")
	first.LastNote = cleanText("first open")
	second := fcEvent("L1", "Judicial", "")
	second.LastNote = cleanText("second open")

	res := ResolveLoanGroups([]ForeclosureRecord{first, second})
	require.Len(t, res.Groups, 1)
	require.NotNil(t, res.Groups[0].Active)
	assert.Equal(t, "first open", *res.Groups[0].Active.LastNote)
}

func TestResolveLoanGroupsAllClosed(t *testing.T) {
	res := ResolveLoanGroups([]ForeclosureRecord{
		fcEvent("L1", "Judicial", "2023-06-01"),
		fcEvent("L1", "Judicial", "2024-01-10"),
	})
	require.Len(t, res.Groups, 1)
	assert.Len(t, res.Groups[0].Events, 2)
	assert.Nil(t, res.Groups[0].Active)
}

func TestResolveLoanGroupsBlankClosedDateIsOpen(t *testing.T) {
	blank := "   "
	rec := fcEvent("L1", "Judicial", "")
	rec.ClosedDate = &blank
	res := ResolveLoanGroups([]ForeclosureRecord{rec})
	require.Len(t, res.Groups, 1)
	assert.NotNil(t, res.Groups[0].Active)
}

func TestResolveLoanGroupsOrderPreserved(t *testing.T) {
	res := ResolveLoanGroups([]ForeclosureRecord{
		fcEvent("B", "Judicial", ""),
		fcEvent("A", "Judicial", ""),
		fcEvent("B", "Judicial", "2024-01-01"),
	})
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "B", res.Groups[0].LoanID)
	assert.Equal(t, "A", res.Groups[1].LoanID)
	assert.Len(t, res.Groups[0].Events, 2)
}
