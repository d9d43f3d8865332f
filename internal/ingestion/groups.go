package ingestion

import "strings"

// LoanEventGroup is the foreclosure-event history of one loan within a single
// file, in file order. Active points at the group's in-progress event, when
// one exists.
type LoanEventGroup struct {
	LoanID string
	Events []ForeclosureRecord
	Active *ForeclosureRecord
}

// GroupResolution is the outcome of grouping a foreclosure file: loan groups
// ordered by first appearance, plus the count of rows discarded by the
// jurisdiction filter.
type GroupResolution struct {
	Groups  []LoanEventGroup
	Skipped int
}

// allowedJurisdiction keeps only true foreclosure rows. Bankruptcy-origin
// rows carry other jurisdiction labels and are excluded from processing
// entirely.
func allowedJurisdiction(j *string) bool {
	if j == nil {
		return false
	}
	lower := strings.ToLower(*j)
	return strings.Contains(lower, "judicial") || strings.Contains(lower, "nonjudicial")
}

// ResolveLoanGroups filters cleaned foreclosure records by jurisdiction and
// groups the remainder by loan id, preserving file order within each group.
// Every retained event belongs in history; the active event is the first in
// file order whose closed date is blank, and a group where every event is
// closed has none.
func ResolveLoanGroups(records []ForeclosureRecord) GroupResolution {
	var res GroupResolution
	byLoan := make(map[string]int)
	for _, rec := range records {
		if !allowedJurisdiction(rec.Jurisdiction) {
			res.Skipped++
			continue
		}
		i, ok := byLoan[rec.LoanID]
		if !ok {
			i = len(res.Groups)
			byLoan[rec.LoanID] = i
			res.Groups = append(res.Groups, LoanEventGroup{LoanID: rec.LoanID})
		}
		res.Groups[i].Events = append(res.Groups[i].Events, rec)
	}
	for i := range res.Groups {
		for j := range res.Groups[i].Events {
			ev := &res.Groups[i].Events[j]
			if ev.ClosedDate == nil || strings.TrimSpace(*ev.ClosedDate) == "" {
				res.Groups[i].Active = ev
				break
			}
		}
	}
	return res
}
