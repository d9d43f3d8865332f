package ingestion

import "strings"

// FileType is the recognized record type of an uploaded file.
type FileType string

const (
	FileTypeForeclosure  FileType = "foreclosure_data"
	FileTypeDailyMetrics FileType = "daily_metrics"
	FileTypeUnknown      FileType = "unknown"
)

// Classification is the outcome of header-based file-type detection.
type Classification struct {
	FileType       FileType
	Confidence     float64
	MatchedHeaders []string
}

// typeProfile is the versioned fingerprint for one record type: the headers a
// file of that type is expected to carry, with recognized aliases per header.
// New record types are added here, not in pipeline logic.
type typeProfile struct {
	fileType FileType
	expected [][]string
}

// minConfidence is the classification floor; best scores below it resolve to
// FileTypeUnknown.
const minConfidence = 40.0

// Declaration order is the tie-break order.
var typeProfiles = []typeProfile{
	{
		fileType: FileTypeForeclosure,
		expected: [][]string{
			{"Loan ID", "loan_id"},
			{"Investor ID", "investor_id"},
			{"Investor Loan Number", "investor_loan_number"},
			{"FC Atty POC", "fc_atty_poc"},
			{"FC Atty POC Phone", "fc_atty_poc_phone"},
			{"FC Jurisdiction", "fc_jurisdiction"},
			{"FC Status", "fc_status"},
			{"FC Start Date", "fc_start_date"},
			{"FC Closed Date", "fc_closed_date"},
			{"FC Closed Reason", "fc_closed_reason"},
			{"Active FC Days", "active_fc_days"},
			{"Hold FC Days", "hold_fc_days"},
			{"Total FC Days", "total_fc_days"},
			{"Contested Start Date", "contested_start_date"},
			{"Active Loss Mit", "active_loss_mit"},
			{"Last Note Date", "last_note_date"},
		},
	},
	{
		fileType: FileTypeDailyMetrics,
		expected: [][]string{
			{"Loan ID", "loan_id"},
			{"Investor", "investor"},
			{"Investor Name", "investor_name"},
			{"Inv Loan", "inv_loan"},
			{"First Name", "first_name"},
			{"Last Name", "last_name"},
			{"Address", "address"},
			{"City", "city"},
			{"State", "state"},
			{"Zip", "zip"},
			{"Prin Bal", "prin_bal"},
			{"Unapplied Bal", "unapplied_bal"},
			{"Int Rate", "int_rate"},
			{"PI Pmt", "pi_pmt"},
			{"Remg Term", "remg_term"},
			{"Origination Date", "origination_date"},
			{"Org Amount", "org_amount"},
			{"Next Pymt Due", "next_pymt_due"},
			{"Maturity Date", "maturity_date"},
			{"Loan Type", "loan_type"},
			{"Legal Status", "legal_status"},
		},
	},
}

// ClassifyHeaders scores the observed headers against every known record-type
// fingerprint. Confidence is the percentage of expected headers present; the
// highest-scoring type wins, earlier declaration winning ties, and scores
// below minConfidence resolve to FileTypeUnknown.
func ClassifyHeaders(headers []string) Classification {
	observed := make(map[string]bool, len(headers))
	for _, h := range headers {
		observed[normalizeHeader(h)] = true
	}

	best := Classification{FileType: FileTypeUnknown}
	for _, profile := range typeProfiles {
		var matched []string
		for _, aliases := range profile.expected {
			for _, alias := range aliases {
				if observed[normalizeHeader(alias)] {
					matched = append(matched, aliases[0])
					break
				}
			}
		}
		confidence := float64(len(matched)) / float64(len(profile.expected)) * 100
		if confidence > best.Confidence {
			best = Classification{
				FileType:       profile.fileType,
				Confidence:     confidence,
				MatchedHeaders: matched,
			}
		}
	}

	if best.Confidence < minConfidence {
		best.FileType = FileTypeUnknown
	}
	return best
}

// normalizeHeader canonicalizes a header for lookup: trim, strip stray quote
// characters, lower-case, spaces to underscores.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.Trim(h, ", \t\n\r")
	h = strings.Trim(h, "'\"`")
	h = strings.ToLower(h)
	return strings.ReplaceAll(h, " ", "_")
}
