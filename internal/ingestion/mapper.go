package ingestion

import "strings"

// headerIndex is a RawRow re-keyed by normalized header name so field lookup
// is case- and whitespace-insensitive.
type headerIndex map[string]string

func indexRow(row RawRow) headerIndex {
	idx := make(headerIndex, len(row))
	for h, v := range row {
		idx[normalizeHeader(h)] = v
	}
	return idx
}

// lookup resolves a canonical field through its ordered alias list; the first
// alias present in the row wins.
func (idx headerIndex) lookup(aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := idx[normalizeHeader(alias)]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// MapForeclosureRow maps and cleans one raw foreclosure-event row. The second
// return is false when the row has no loan id and must be skipped rather than
// mapped.
func MapForeclosureRow(row RawRow, sourceFilename string) (ForeclosureRecord, bool) {
	idx := indexRow(row)
	loanID := strings.TrimSpace(idx.lookup("Loan ID", "loan_id"))
	if loanID == "" {
		return ForeclosureRecord{}, false
	}

	var issues issueLog
	rec := ForeclosureRecord{
		LoanID:             loanID,
		InvestorID:         cleanText(idx.lookup("Investor ID", "investor_id")),
		InvestorLoanNumber: cleanText(idx.lookup("Investor Loan Number", "investor_loan_number", "Inv Loan Number")),
		AttyPOC:            cleanText(idx.lookup("FC Atty POC", "fc_atty_poc")),
		AttyPOCPhone:       cleanPhone(idx.lookup("FC Atty POC Phone", "fc_atty_poc_phone")),
		AttyPOCEmail:       cleanText(idx.lookup("FC Atty POC Email", "fc_atty_poc_email")),
		Jurisdiction:       cleanText(idx.lookup("FC Jurisdiction", "fc_jurisdiction")),
		Status:             cleanText(idx.lookup("FC Status", "fc_status")),
		StartDate:          cleanDate(idx.lookup("FC Start Date", "fc_start_date"), "fc_start_date", &issues),
		ClosedDate:         cleanDate(idx.lookup("FC Closed Date", "fc_closed_date"), "fc_closed_date", &issues),
		ClosedReason:       cleanText(idx.lookup("FC Closed Reason", "fc_closed_reason")),
		ActiveFCDays:       cleanInt(idx.lookup("Active FC Days", "active_fc_days"), "active_fc_days", &issues),
		HoldFCDays:         cleanInt(idx.lookup("Hold FC Days", "hold_fc_days"), "hold_fc_days", &issues),
		TotalFCDays:        cleanInt(idx.lookup("Total FC Days", "total_fc_days"), "total_fc_days", &issues),
		ContestedStartDate: cleanDate(idx.lookup("Contested Start Date", "contested_start_date"), "contested_start_date", &issues),
		ContestedReason:    cleanText(idx.lookup("Contested Reason", "contested_reason")),
		ContestedSummary:   cleanText(idx.lookup("Contested Summary", "contested_summary")),
		ActiveLossMit:      cleanText(idx.lookup("Active Loss Mit", "active_loss_mit")),
		LossMitStartDate:   cleanDate(idx.lookup("Active Loss Mit Start Date", "active_loss_mit_start_date"), "active_loss_mit_start_date", &issues),
		LossMitReason:      cleanText(idx.lookup("Active Loss Mit Reason", "active_loss_mit_reason")),
		LastNoteDate:       cleanDate(idx.lookup("Last Note Date", "last_note_date"), "last_note_date", &issues),
		LastNote:           cleanText(idx.lookup("Last Note", "last_note")),
		SourceFilename:     sourceFilename,
	}
	rec.DataIssues = issues.summary()
	return rec, true
}

// MapDailyMetricsRow maps and cleans one raw daily-metrics row.
func MapDailyMetricsRow(row RawRow, sourceFilename string) (DailyMetricsRecord, bool) {
	idx := indexRow(row)
	loanID := strings.TrimSpace(idx.lookup("Loan ID", "loan_id"))
	if loanID == "" {
		return DailyMetricsRecord{}, false
	}

	var issues issueLog
	rec := DailyMetricsRecord{
		LoanID:           loanID,
		Investor:         cleanText(idx.lookup("Investor", "investor")),
		InvestorName:     cleanText(idx.lookup("Investor Name", "investor_name")),
		InvLoan:          cleanText(idx.lookup("Inv Loan", "inv_loan", "Investor Loan")),
		FirstName:        cleanText(idx.lookup("First Name", "first_name")),
		LastName:         cleanText(idx.lookup("Last Name", "last_name")),
		Address:          cleanText(idx.lookup("Address", "address")),
		City:             cleanText(idx.lookup("City", "city")),
		State:            cleanText(idx.lookup("State", "state")),
		Zip:              cleanText(idx.lookup("Zip", "zip", "Zip Code")),
		PrinBal:          cleanCurrency(idx.lookup("Prin Bal", "prin_bal", "Principal Balance"), "prin_bal", &issues),
		UnappliedBal:     cleanCurrency(idx.lookup("Unapplied Bal", "unapplied_bal"), "unapplied_bal", &issues),
		IntRate:          cleanPercentage(idx.lookup("Int Rate", "int_rate", "Interest Rate"), "int_rate", &issues),
		PIPmt:            cleanCurrency(idx.lookup("PI Pmt", "pi_pmt"), "pi_pmt", &issues),
		RemgTerm:         cleanInt(idx.lookup("Remg Term", "remg_term"), "remg_term", &issues),
		OriginationDate:  cleanDate(idx.lookup("Origination Date", "origination_date"), "origination_date", &issues),
		OrgTerm:          cleanInt(idx.lookup("Org Term", "org_term"), "org_term", &issues),
		OrgAmount:        cleanCurrency(idx.lookup("Org Amount", "org_amount"), "org_amount", &issues),
		LienPos:          cleanText(idx.lookup("Lien Pos", "lien_pos", "Lien Position")),
		NextPymtDue:      cleanDate(idx.lookup("Next Pymt Due", "next_pymt_due"), "next_pymt_due", &issues),
		LastPymtReceived: cleanDate(idx.lookup("Last Pymt Received", "last_pymt_received"), "last_pymt_received", &issues),
		FirstPymtDue:     cleanDate(idx.lookup("First Pymt Due", "first_pymt_due"), "first_pymt_due", &issues),
		MaturityDate:     cleanDate(idx.lookup("Maturity Date", "maturity_date"), "maturity_date", &issues),
		LoanType:         cleanText(idx.lookup("Loan Type", "loan_type")),
		LegalStatus:      cleanText(idx.lookup("Legal Status", "legal_status")),
		Warning:          cleanText(idx.lookup("Warning", "warning")),
		PymtMethod:       cleanText(idx.lookup("Pymt Method", "pymt_method", "Payment Method")),
		DraftDay:         cleanText(idx.lookup("Draft Day", "draft_day")),
		SPOC:             cleanText(idx.lookup("SPOC", "spoc")),
		SourceFilename:   sourceFilename,
	}
	rec.DataIssues = issues.summary()
	return rec, true
}
