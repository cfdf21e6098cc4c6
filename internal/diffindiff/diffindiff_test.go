package diffindiff

import (
	"math"
	"testing"

	"acl-research/internal/aggregate"

	"github.com/stretchr/testify/require"
)

func group(n int, means map[string]float64, stds map[string]float64) aggregate.GroupStats {
	return aggregate.GroupStats{
		Mean:       means,
		StdDev:     stds,
		SampleSize: n,
	}
}

func testGroups() Groups {
	return Groups{
		InjuredPre: group(4,
			map[string]float64{"goals": 2, "shots": 10, "xg": 1, "minutes": 900},
			map[string]float64{"goals": 1, "shots": 2, "minutes": 100},
		),
		InjuredPost: group(4,
			map[string]float64{"goals": 1, "shots": 8, "xg": 1, "minutes": 800},
			map[string]float64{"goals": 1, "shots": 2, "xg": 0.5, "minutes": 100},
		),
		ControlPre: group(4,
			map[string]float64{"goals": 2, "shots": 10, "xg": 1, "minutes": 900},
			map[string]float64{"goals": 1, "shots": 2, "xg": 0.5, "minutes": 100},
		),
		ControlPost: group(4,
			map[string]float64{"goals": 2.5, "shots": 10, "xg": 2},
			map[string]float64{"goals": 1, "shots": 2, "xg": 0.5},
		),
	}
}

func findResult(t *testing.T, results []Result, stat string) Result {
	for _, r := range results {
		if r.Stat == stat {
			return r
		}
	}
	t.Fatalf("no result for %s", stat)
	return Result{}
}

func TestAnalyze(t *testing.T) {
	results := Analyze(testGroups(), ModeDiffInDiff)

	// minutes is missing from the control post group
	require.Len(t, results, 3)
	require.Equal(t, "goals", results[0].Stat)

	goals := findResult(t, results, "goals")
	require.InDelta(t, -1, goals.DiffInjured, 1e-9)
	require.InDelta(t, 0.5, goals.DiffControl, 1e-9)
	require.InDelta(t, -1.5, goals.Raw, 1e-9)
	require.InDelta(t, 1, goals.SE, 1e-9)
	require.Equal(t, 12, goals.DF)
	require.True(t, goals.Tested)
	require.InDelta(t, -1.5, goals.Normalized, 1e-9)
	require.Equal(t, goals.Normalized, goals.T)
	require.InDelta(t, 0.1594, goals.P, 1e-3)

	// the injured pre group has a single xg value, so no deviation
	xg := findResult(t, results, "xg")
	require.False(t, xg.Tested)
	require.InDelta(t, -1, xg.Raw, 1e-9)
	require.Zero(t, xg.P)
}

func TestAnalyzeModes(t *testing.T) {
	testCases := []struct {
		mode     Mode
		expected float64
	}{
		{mode: ModeDiffInDiff, expected: -1.5},
		{mode: ModeInjured, expected: -1},
		{mode: ModeControl, expected: 0.5},
	}
	for _, test := range testCases {
		goals := findResult(t, Analyze(testGroups(), test.mode), "goals")
		require.InDelta(t, test.expected, goals.Raw, 1e-9, string(test.mode))
		require.InDelta(t, test.expected, goals.Normalized, 1e-9, string(test.mode))
	}
}

func TestAnalyzeZeroDeviation(t *testing.T) {
	g := testGroups()
	for _, s := range []*aggregate.GroupStats{&g.InjuredPre, &g.InjuredPost, &g.ControlPre, &g.ControlPost} {
		s.StdDev["shots"] = 0
	}
	shots := findResult(t, Analyze(g, ModeDiffInDiff), "shots")
	require.False(t, shots.Tested)
	require.Zero(t, shots.SE)
}

func TestAnalyzeNoDegreesOfFreedom(t *testing.T) {
	g := testGroups()
	g.InjuredPre.SampleSize = 1
	g.InjuredPost.SampleSize = 1
	g.ControlPre.SampleSize = 1
	g.ControlPost.SampleSize = 1

	goals := findResult(t, Analyze(g, ModeDiffInDiff), "goals")
	require.Equal(t, 0, goals.DF)
	require.False(t, goals.Tested)
}

func TestPValue(t *testing.T) {
	require.InDelta(t, 1, PValue(0, 10), 1e-9)
	require.InDelta(t, 0.05, PValue(2.228, 10), 1e-3)
	require.InDelta(t, PValue(2.228, 10), PValue(-2.228, 10), 1e-12)
	require.Less(t, PValue(10, 30), 1e-9)
	require.False(t, math.IsNaN(PValue(1.5, 12)))
}

func TestReportable(t *testing.T) {
	results := []Result{
		{Stat: "goals", Tested: true, P: 0.2},
		{Stat: "shots", Tested: true, P: 0.01},
		{Stat: "minutes", Tested: true, P: 0.001},
		{Stat: "xg", Tested: false},
		{Stat: "games", Tested: true, P: 0.2},
	}
	reportable := Reportable(results)

	var stats []string
	for _, r := range reportable {
		stats = append(stats, r.Stat)
	}
	// minutes has no label, ties are broken by label
	require.Equal(t, []string{"shots", "games", "goals"}, stats)

	require.True(t, Significant(reportable[0], DefaultAlpha))
	require.False(t, Significant(reportable[1], DefaultAlpha))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeDiffInDiff, mode)

	mode, err = ParseMode(" Injured ")
	require.NoError(t, err)
	require.Equal(t, ModeInjured, mode)

	_, err = ParseMode("both")
	require.Error(t, err)
}
