package ingestion

import (
	"regexp"
	"time"

	"LoanPulse/api/constants"
)

// Filename shapes carrying a report date, tried in order:
// daily_metrics_2024-01-15.xlsx, foreclosure_data_20240115.xlsx,
// metrics-2024.01.15.xlsx, metrics_2024_01_15.csv.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`),
	regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`),
	regexp.MustCompile(`(\d{4})\.(\d{2})\.(\d{2})`),
	regexp.MustCompile(`(\d{4})_(\d{2})_(\d{2})`),
}

// ReportDateFromFilename extracts the report date embedded in an upload's
// filename. The first pattern producing a calendar-valid date wins; a
// filename without one falls back to the current UTC date.
func ReportDateFromFilename(filename string, now time.Time) string {
	for _, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		candidate := m[1] + "-" + m[2] + "-" + m[3]
		if _, err := time.Parse(constants.DateFormat, candidate); err == nil {
			return candidate
		}
	}
	return now.UTC().Format(constants.DateFormat)
}
