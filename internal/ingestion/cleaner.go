package ingestion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"LoanPulse/api/constants"
)

// issueLog collects human-readable cleaning anomalies for a single row. The
// joined summary lands in the record's data_issues column; cleaning problems
// never abort a row.
type issueLog struct {
	notes []string
}

func (l *issueLog) addf(format string, args ...interface{}) {
	l.notes = append(l.notes, fmt.Sprintf(format, args...))
}

// summary returns the joined notes, or nil when the row cleaned without
// anomalies.
func (l *issueLog) summary() *string {
	if len(l.notes) == 0 {
		return nil
	}
	s := strings.Join(l.notes, "; ")
	return &s
}

// cleanCurrency strips currency symbols, thousands separators and
// parentheses-as-negative, then parses to a decimal. Empty cells are null
// without comment; unparseable cells are null with an issue note.
func cleanCurrency(raw, field string, issues *issueLog) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(strings.Trim(s, "$"))
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		issues.addf("%s: unparseable amount %q", field, raw)
		return nil
	}
	if negative {
		d = d.Neg()
	}
	return &d
}

// cleanPercentage parses an already-scaled percentage value, tolerating a
// trailing percent sign.
func cleanPercentage(raw, field string, issues *issueLog) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		issues.addf("%s: unparseable percentage %q", field, raw)
		return nil
	}
	return &d
}

// cleanInt parses a whole number, tolerating thousands separators and the
// trailing ".0" Excel sometimes emits for integer cells.
func cleanInt(raw, field string, issues *issueLog) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.Atoi(s)
	if err != nil {
		issues.addf("%s: unparseable number %q", field, raw)
		return nil
	}
	return &n
}

// textDateLayouts are the accepted textual date shapes, normalized to
// constants.DateFormat on output.
var textDateLayouts = []string{
	constants.DateFormat,
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"01/02/06",
}

// excelEpoch is the zero day of Excel's 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// cleanDate accepts spreadsheet serial-date numbers and common textual
// formats, producing a normalized YYYY-MM-DD string.
func cleanDate(raw, field string, issues *issueLog) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// plausible serial range: 1900-01-01 through 2200
		if serial >= 2 && serial < 110000 {
			d := excelEpoch.AddDate(0, 0, int(serial)).Format(constants.DateFormat)
			return &d
		}
		issues.addf("%s: invalid date %q", field, raw)
		return nil
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := t.Format(constants.DateFormat)
			return &d
		}
	}
	issues.addf("%s: invalid date %q", field, raw)
	return nil
}

// cleanPhone keeps the digits of a phone number and rewrites ten-digit
// national numbers (optionally with a leading 1) as (AAA) BBB-CCCC. Other
// shapes pass through trimmed.
func cleanPhone(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) == 10 {
		formatted := fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
		return &formatted
	}
	return &s
}

// cleanText trims free text, returning nil for empty cells.
func cleanText(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}
