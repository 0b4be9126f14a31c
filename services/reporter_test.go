package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hotel-deals/models"
)

func TestReporterPrintsRankedTable(t *testing.T) {
	r := NewAnalyzer(newTestLogger()).Analyze("Muscat", scenarioListings(), models.Budget{Amount: 120, Currency: "OMR"})

	var buf bytes.Buffer
	NewReporter(&buf, false).Print(r)
	out := buf.String()

	require.Contains(t, out, "HOTEL DEALS IN MUSCAT")
	require.Contains(t, out, "Market average         : 90.00")
	require.Contains(t, out, "Warning: Budget currency OMR")
	require.Contains(t, out, "Best Value: A (4.0 rating, 100.00 USD)")
	require.NotContains(t, out, "\x1b[", "no colour when disabled")

	// A ranks above C
	require.Less(t, strings.Index(out, "│ 1 │ A"), strings.Index(out, "│ 2 │ C"))
}

func TestReporterEmpty(t *testing.T) {
	r := NewAnalyzer(newTestLogger()).Analyze("Muscat", nil, models.Budget{Amount: 50})

	var buf bytes.Buffer
	NewReporter(&buf, false).Print(r)

	require.Contains(t, buf.String(), "No hotels matched your budget.")
	require.Contains(t, buf.String(), "Market average         : N/A")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
