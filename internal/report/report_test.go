package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"acl-research/internal/diffindiff"
	"acl-research/internal/prepost"
	"acl-research/internal/study"

	"github.com/stretchr/testify/require"
)

var testResults = []diffindiff.Result{
	{Stat: "goals", Raw: -1.5, Normalized: -0.75, T: -0.75, P: 0.2, Tested: true},
	{Stat: "shots", Raw: 4, Normalized: 3.1, T: 3.1, P: 0.01, Tested: true},
	{Stat: "minutes", Raw: 10, Normalized: 5, T: 5, P: 0.001, Tested: true},
	{Stat: "xg", Raw: 1},
}

func TestResults(t *testing.T) {
	buf := &bytes.Buffer{}
	Results(buf, testResults, ResultOptions{Mode: diffindiff.ModeDiffInDiff})
	out := buf.String()

	require.Contains(t, out, "Difference in differences")
	require.Contains(t, out, "Raw Δ")
	require.Contains(t, out, "-1.50")
	// unlabelled and untested stats are left out
	require.NotContains(t, out, "minutes")
	require.NotContains(t, out, "Expected Goals")

	shots := strings.Index(out, "Total Shots")
	goals := strings.Index(out, "Goals Scored")
	require.NotEqual(t, -1, shots)
	require.NotEqual(t, -1, goals)
	require.Less(t, shots, goals)
	require.Equal(t, 1, strings.Count(out, "yes"))
}

func TestResultsFormats(t *testing.T) {
	buf := &bytes.Buffer{}
	Results(buf, testResults, ResultOptions{
		Mode:       diffindiff.ModeInjured,
		Normalized: true,
		Format:     FormatCSV,
	})
	require.Contains(t, buf.String(), "Statistic,Normalized Δ,t,p,Significant")
	require.Contains(t, buf.String(), "Total Shots,3.10,3.10,0.010,yes")

	buf.Reset()
	Results(buf, testResults, ResultOptions{Format: FormatMarkdown})
	require.Contains(t, buf.String(), "| Statistic |")

	buf.Reset()
	Results(buf, testResults, ResultOptions{Format: FormatHTML})
	require.Contains(t, buf.String(), "<table")
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		input    string
		expected Format
	}{
		{input: "", expected: FormatTable},
		{input: "CSV", expected: FormatCSV},
		{input: "md", expected: FormatMarkdown},
		{input: "html", expected: FormatHTML},
	}
	for _, test := range testCases {
		format, err := ParseFormat(test.input)
		require.NoError(t, err)
		require.Equal(t, test.expected, format)
	}
	_, err := ParseFormat("xlsx")
	require.Error(t, err)
}

func TestSpreads(t *testing.T) {
	buf := &bytes.Buffer{}
	Spreads(buf, []prepost.StatSummary{
		{Stat: "minutes", Pre: prepost.Spread{N: 2, Min: 1, Q1: 1, Median: 1, Q3: 2, Max: 2}},
	}, FormatCSV)
	out := buf.String()
	require.Contains(t, out, "minutes,pre,2,1.00,1.00,1.00,2.00,2.00")
	require.NotContains(t, out, "minutes,post")
}

func TestMessage(t *testing.T) {
	r := study.Report{
		Mode:    diffindiff.ModeDiffInDiff,
		Results: testResults,
		Pairs:   []study.Pair{{Injured: "Ann Injured", AnchorYear: 2018, Control: "Cara Control", ControlYear: 2018}},
		Skips:   []study.Skip{{Player: "Bea Nostats", Reason: "no fbref stats"}},
	}
	msg := Message([]string{"research@example.com"}, r, false, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	require.Equal(t, []string{"research@example.com"}, msg.To)
	require.Equal(t, "ACL comparison (did, 1 pairs) 2024-03-01", msg.Subject)
	require.Contains(t, msg.Text, "Cara Control")
	require.Contains(t, msg.Text, "Bea Nostats")
	require.Contains(t, msg.HTML, "<table")
	require.Contains(t, msg.HTML, "Total Shots")
}
