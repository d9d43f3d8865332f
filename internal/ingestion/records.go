package ingestion

import "github.com/shopspring/decimal"

// ForeclosureRecord is one cleaned foreclosure-event row. One loan can appear
// on several rows in a single file, one per historical event. All fields are
// nullable except the loan id; a row without a loan id is never mapped.
// Dates are normalized YYYY-MM-DD strings.
type ForeclosureRecord struct {
	LoanID             string
	InvestorID         *string
	InvestorLoanNumber *string
	AttyPOC            *string
	AttyPOCPhone       *string
	AttyPOCEmail       *string
	Jurisdiction       *string
	Status             *string
	StartDate          *string
	ClosedDate         *string
	ClosedReason       *string
	ActiveFCDays       *int
	HoldFCDays         *int
	TotalFCDays        *int
	ContestedStartDate *string
	ContestedReason    *string
	ContestedSummary   *string
	ActiveLossMit      *string
	LossMitStartDate   *string
	LossMitReason      *string
	LastNoteDate       *string
	LastNote           *string
	SourceFilename     string
	DataIssues         *string
}

// DailyMetricsRecord is one cleaned daily loan-metrics row, a point-in-time
// snapshot of servicing state for a single loan.
type DailyMetricsRecord struct {
	LoanID           string
	Investor         *string
	InvestorName     *string
	InvLoan          *string
	FirstName        *string
	LastName         *string
	Address          *string
	City             *string
	State            *string
	Zip              *string
	PrinBal          *decimal.Decimal
	UnappliedBal     *decimal.Decimal
	IntRate          *decimal.Decimal
	PIPmt            *decimal.Decimal
	RemgTerm         *int
	OriginationDate  *string
	OrgTerm          *int
	OrgAmount        *decimal.Decimal
	LienPos          *string
	NextPymtDue      *string
	LastPymtReceived *string
	FirstPymtDue     *string
	MaturityDate     *string
	LoanType         *string
	LegalStatus      *string
	Warning          *string
	PymtMethod       *string
	DraftDay         *string
	SPOC             *string
	SourceFilename   string
	DataIssues       *string
}
