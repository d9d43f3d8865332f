package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffFormat(t *testing.T) {
	t.Run("zip magic means OOXML regardless of content", func(t *testing.T) {
		assert.Equal(t, FormatSpreadsheetOOXML, SniffFormat([]byte{0x50, 0x4B, 0x03, 0x04}))
		assert.Equal(t, FormatSpreadsheetOOXML, SniffFormat([]byte("PK this is not really a zip")))
	})

	t.Run("compound file magic means legacy xls", func(t *testing.T) {
		assert.Equal(t, FormatSpreadsheetCFB, SniffFormat([]byte{0xD0, 0xCF, 0x11, 0xE0}))
	})

	t.Run("anything else is delimited text", func(t *testing.T) {
		assert.Equal(t, FormatDelimitedText, SniffFormat([]byte("Loan ID,Prin Bal\nL1,100")))
		assert.Equal(t, FormatDelimitedText, SniffFormat([]byte{0xEF, 0xBB, 0xBF, 'a'}))
		assert.Equal(t, FormatDelimitedText, SniffFormat(nil))
		assert.Equal(t, FormatDelimitedText, SniffFormat([]byte{0x50}))
	})

	t.Run("spreadsheet formats report as such", func(t *testing.T) {
		assert.True(t, FormatSpreadsheetOOXML.IsSpreadsheet())
		assert.True(t, FormatSpreadsheetCFB.IsSpreadsheet())
		assert.False(t, FormatDelimitedText.IsSpreadsheet())
	})
}
