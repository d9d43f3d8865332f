package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCurrency(t *testing.T) {
	t.Run("plain amount", func(t *testing.T) {
		var issues issueLog
		d := cleanCurrency("1234.56", "prin_bal", &issues)
		require.NotNil(t, d)
		assert.Equal(t, "1234.56", d.String())
		assert.Nil(t, issues.summary())
	})

	t.Run("symbols and separators", func(t *testing.T) {
		var issues issueLog
		d := cleanCurrency("$1,234,567.89", "prin_bal", &issues)
		require.NotNil(t, d)
		assert.Equal(t, "1234567.89", d.String())
	})

	t.Run("parentheses negative with symbol inside", func(t *testing.T) {
		var issues issueLog
		d := cleanCurrency("$(1,234.56)", "prin_bal", &issues)
		require.NotNil(t, d)
		assert.Equal(t, "-1234.56", d.String())
		assert.Nil(t, issues.summary(), "well-formed negatives add no issue note")
	})

	t.Run("parentheses outside symbol", func(t *testing.T) {
		var issues issueLog
		d := cleanCurrency("($99.00)", "prin_bal", &issues)
		require.NotNil(t, d)
		assert.True(t, d.IsNegative())
	})

	t.Run("empty is null without note", func(t *testing.T) {
		var issues issueLog
		assert.Nil(t, cleanCurrency("", "prin_bal", &issues))
		assert.Nil(t, cleanCurrency("   ", "prin_bal", &issues))
		assert.Nil(t, issues.summary())
	})

	t.Run("unparseable is null with note", func(t *testing.T) {
		var issues issueLog
		assert.Nil(t, cleanCurrency("N/A", "prin_bal", &issues))
		require.NotNil(t, issues.summary())
		assert.Contains(t, *issues.summary(), "prin_bal")
		assert.Contains(t, *issues.summary(), "N/A")
	})
}

func TestCleanPercentage(t *testing.T) {
	var issues issueLog

	d := cleanPercentage("7.125%", "int_rate", &issues)
	require.NotNil(t, d)
	assert.Equal(t, "7.125", d.String())

	d = cleanPercentage("7.125", "int_rate", &issues)
	require.NotNil(t, d)
	assert.Equal(t, "7.125", d.String())

	assert.Nil(t, cleanPercentage("", "int_rate", &issues))
	assert.Nil(t, issues.summary())

	assert.Nil(t, cleanPercentage("n/a", "int_rate", &issues))
	assert.NotNil(t, issues.summary())
}

func TestCleanInt(t *testing.T) {
	var issues issueLog

	n := cleanInt("1,234", "active_fc_days", &issues)
	require.NotNil(t, n)
	assert.Equal(t, 1234, *n)

	n = cleanInt("42.0", "active_fc_days", &issues)
	require.NotNil(t, n)
	assert.Equal(t, 42, *n)

	assert.Nil(t, cleanInt("", "active_fc_days", &issues))
	assert.Nil(t, issues.summary())

	assert.Nil(t, cleanInt("many", "active_fc_days", &issues))
	assert.NotNil(t, issues.summary())
}

func TestCleanDate(t *testing.T) {
	t.Run("iso date passes through", func(t *testing.T) {
		var issues issueLog
		d := cleanDate("2024-01-15", "fc_start_date", &issues)
		require.NotNil(t, d)
		assert.Equal(t, "2024-01-15", *d)
	})

	t.Run("us formats normalize", func(t *testing.T) {
		var issues issueLog
		d := cleanDate("01/15/2024", "fc_start_date", &issues)
		require.NotNil(t, d)
		assert.Equal(t, "2024-01-15", *d)

		d = cleanDate("1/5/2024", "fc_start_date", &issues)
		require.NotNil(t, d)
		assert.Equal(t, "2024-01-05", *d)
		assert.Nil(t, issues.summary())
	})

	t.Run("spreadsheet serial numbers", func(t *testing.T) {
		var issues issueLog
		// 45306 days after 1899-12-30 is 2024-01-15
		d := cleanDate("45306", "fc_start_date", &issues)
		require.NotNil(t, d)
		assert.Equal(t, "2024-01-15", *d)
		assert.Nil(t, issues.summary())
	})

	t.Run("empty is null without note", func(t *testing.T) {
		var issues issueLog
		assert.Nil(t, cleanDate("", "fc_start_date", &issues))
		assert.Nil(t, issues.summary())
	})

	t.Run("invalid is null with note", func(t *testing.T) {
		var issues issueLog
		assert.Nil(t, cleanDate("not a date", "fc_start_date", &issues))
		require.NotNil(t, issues.summary())
		assert.Contains(t, *issues.summary(), "fc_start_date")
	})
}

func TestCleanPhone(t *testing.T) {
	p := cleanPhone("555-123-4567")
	require.NotNil(t, p)
	assert.Equal(t, "(555) 123-4567", *p)

	p = cleanPhone("1 (555) 123-4567")
	require.NotNil(t, p)
	assert.Equal(t, "(555) 123-4567", *p)

	p = cleanPhone("ext 402")
	require.NotNil(t, p)
	assert.Equal(t, "ext 402", *p)

	assert.Nil(t, cleanPhone(""))
}

func TestCleanText(t *testing.T) {
	s := cleanText("  hello ")
	require.NotNil(t, s)
	assert.Equal(t, "hello", *s)
	assert.Nil(t, cleanText("   "))
}

func TestIssueLogSummary(t *testing.T) {
	var issues issueLog
	issues.addf("a: %s", "one")
	issues.addf("b: %s", "two")
	require.NotNil(t, issues.summary())
	assert.Equal(t, "a: one; b: two", *issues.summary())
}
