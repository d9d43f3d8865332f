package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// RawRow maps a raw header name to the raw cell value for one data row.
// Values are always present for every header, as empty string when the cell
// is blank.
type RawRow map[string]string

const (
	// how many leading lines of a delimited file are scanned for the header
	headerScanLimit = 10

	// sentinel columns every servicer export carries; the first line holding
	// both is the header row
	headerSentinelID      = "Loan ID"
	headerSentinelBalance = "Prin Bal"

	maxXLSRows = 65536
)

// ParseTabular decodes an uploaded buffer of the given sniffed format into
// an ordered header list plus data rows. A nil/empty row result means the
// file carried no usable data; only container-level decode problems return
// an error.
func ParseTabular(data []byte, format FileFormat) ([]string, []RawRow, error) {
	switch format {
	case FormatSpreadsheetOOXML:
		return parseXLSX(data)
	case FormatSpreadsheetCFB:
		return parseXLS(data)
	default:
		headers, rows := parseDelimited(data)
		return headers, rows, nil
	}
}

func parseXLSX(data []byte) ([]string, []RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	headers, rows := zipSheetRows(cells)
	return headers, rows, nil
}

func parseXLS(data []byte) ([]string, []RawRow, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open legacy workbook: %w", err)
	}
	cells := wb.ReadAllCells(maxXLSRows)
	headers, rows := zipSheetRows(cells)
	return headers, rows, nil
}

// zipSheetRows turns the first non-blank sheet row into headers and zips the
// remaining rows to them by position, padding short rows with empty strings.
func zipSheetRows(cells [][]string) ([]string, []RawRow) {
	start := -1
	for i, row := range cells {
		if !allEmpty(row) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, nil
	}
	headers := make([]string, len(cells[start]))
	for i, h := range cells[start] {
		headers[i] = strings.TrimSpace(h)
	}
	var rows []RawRow
	for _, row := range cells[start+1:] {
		if r, ok := zipRow(headers, row); ok {
			rows = append(rows, r)
		}
	}
	return headers, rows
}

// parseDelimited handles CSV text, including CSVs misnamed as .xlsx. The
// header row is discovered by scanning the first headerScanLimit lines for
// both sentinel column names; a file without one yields zero rows.
func parseDelimited(data []byte) ([]string, []RawRow) {
	text := string(data)
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	headerIndex := -1
	var headers []string
	limit := headerScanLimit
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		if strings.Contains(lines[i], headerSentinelID) && strings.Contains(lines[i], headerSentinelBalance) {
			headers = splitDelimitedLine(lines[i])
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return nil, nil
	}

	var rows []RawRow
	for _, line := range lines[headerIndex+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if r, ok := zipRow(headers, splitDelimitedLine(line)); ok {
			rows = append(rows, r)
		}
	}
	return headers, rows
}

// splitDelimitedLine is a quote-aware comma splitter: a double quote toggles
// quoted state, a doubled quote inside quotes is a literal quote, and every
// field is trimmed of surrounding whitespace.
func splitDelimitedLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// zipRow aligns values to headers by position. Headers with empty names are
// ignored, missing trailing values default to empty string, and rows with
// every field empty are dropped.
func zipRow(headers, values []string) (RawRow, bool) {
	row := make(RawRow, len(headers))
	hasValue := false
	for i, h := range headers {
		if h == "" {
			continue
		}
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		row[h] = v
		if v != "" {
			hasValue = true
		}
	}
	if !hasValue {
		return nil, false
	}
	return row, true
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
