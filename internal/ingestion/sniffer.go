package ingestion

// FileFormat is the container format detected from raw bytes, never from the
// filename extension. Vendors routinely upload CSV exports renamed to .xlsx.
type FileFormat int

const (
	FormatDelimitedText FileFormat = iota
	FormatSpreadsheetOOXML
	FormatSpreadsheetCFB
)

// IsSpreadsheet reports whether the format is a binary spreadsheet container.
func (f FileFormat) IsSpreadsheet() bool {
	return f == FormatSpreadsheetOOXML || f == FormatSpreadsheetCFB
}

func (f FileFormat) String() string {
	switch f {
	case FormatSpreadsheetOOXML:
		return "xlsx"
	case FormatSpreadsheetCFB:
		return "xls"
	default:
		return "csv"
	}
}

// SniffFormat inspects the leading magic bytes of an uploaded buffer.
// OOXML workbooks are zip archives ("PK"), legacy Excel 97-2003 workbooks are
// OLE compound files (0xD0 0xCF). Everything else is treated as delimited
// text; truncated or garbage spreadsheet bytes surface as parse errors
// downstream, never here.
func SniffFormat(data []byte) FileFormat {
	if len(data) >= 2 {
		if data[0] == 0x50 && data[1] == 0x4B {
			return FormatSpreadsheetOOXML
		}
		if data[0] == 0xD0 && data[1] == 0xCF {
			return FormatSpreadsheetCFB
		}
	}
	return FormatDelimitedText
}
