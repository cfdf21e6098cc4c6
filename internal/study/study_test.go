package study

import (
	"context"
	"math"
	"testing"

	"acl-research/internal/db/dbtest"
	"acl-research/internal/diffindiff"
	"acl-research/internal/fbref"
	"acl-research/internal/matching"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (Study, func()) {
	b, cleanup := dbtest.New(t, "internal/study")

	ann := b.Player("Ann Injured", "")
	b.Season(ann.ID, 2017, "Team A", dbtest.Line{Gls: 5})
	b.Season(ann.ID, 2018, "Team A", dbtest.Line{Gls: 6})
	b.Season(ann.ID, 2019, "Team A", dbtest.Line{Gls: 1})
	b.Season(ann.ID, 2020, "Team A", dbtest.Line{Gls: 2})
	b.Injury(ann.ID, "2019-06-01")
	b.Stats(ann.ID, []map[string]string{
		{"season": "2017", "minutes": "1,000"},
		{"season": "2019", "minutes": "600"},
		{"season": "2020", "minutes": "800"},
	}, nil)

	bea := b.Player("Bea Nostats", "")
	b.Season(bea.ID, 2018, "Team B", dbtest.Line{Gls: 3})
	b.Injury(bea.ID, "2020-01-01")

	cara := b.Player("Cara Control", "")
	b.Season(cara.ID, 2017, "Team C", dbtest.Line{Gls: 1})
	b.Season(cara.ID, 2018, "Team C", dbtest.Line{Gls: 6})
	b.Season(cara.ID, 2019, "Team C", dbtest.Line{Gls: 1})
	b.Stats(cara.ID, []map[string]string{
		{"season": "2017", "minutes": "900"},
		{"season": "2019", "minutes": "950"},
	}, nil)

	dee := b.Player("Dee Rookie", "")
	b.Season(dee.ID, 2021, "Team D", dbtest.Line{Gls: 1})
	b.Injury(dee.ID, "2021-05-01")
	b.Stats(dee.ID, nil, nil)

	s := New(b.DB, fbref.NewStore(b.DB, nil), matching.NewMatcher(b.Qry, matching.Options{}))
	return s, cleanup
}

func TestRun(t *testing.T) {
	s, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	report, err := s.Run(ctx, Options{Offline: true})
	require.NoError(t, err)
	require.Equal(t, diffindiff.ModeDiffInDiff, report.Mode)

	require.Equal(t, []Pair{{
		Injured:     "Ann Injured",
		InjuredID:   1,
		AnchorYear:  2018,
		Control:     "Cara Control",
		ControlID:   3,
		ControlYear: 2018,
		Distance:    0,
	}}, report.Pairs)

	require.Len(t, report.Skips, 2)
	require.Equal(t, "Bea Nostats", report.Skips[0].Player)
	require.Contains(t, report.Skips[0].Reason, "no fbref stats")
	require.Equal(t, Skip{Player: "Dee Rookie", Reason: "no pre-injury seasons"}, report.Skips[1])

	require.Equal(t, 1, report.Groups.InjuredPre.SampleSize)
	require.InDelta(t, 1000, report.Groups.InjuredPre.Mean["minutes"], 1e-9)
	require.InDelta(t, 700, report.Groups.InjuredPost.Mean["minutes"], 1e-9)
	require.InDelta(t, 900, report.Groups.ControlPre.Mean["minutes"], 1e-9)
	require.InDelta(t, 950, report.Groups.ControlPost.Mean["minutes"], 1e-9)

	require.Len(t, report.Results, 1)
	minutes := report.Results[0]
	require.Equal(t, "minutes", minutes.Stat)
	require.InDelta(t, -300, minutes.DiffInjured, 1e-9)
	require.InDelta(t, 50, minutes.DiffControl, 1e-9)
	require.InDelta(t, -350, minutes.Raw, 1e-9)
	// one player per group has no deviation
	require.False(t, minutes.Tested)

	injuredOnly, err := s.Run(ctx, Options{Mode: diffindiff.ModeInjured, Offline: true})
	require.NoError(t, err)
	require.InDelta(t, -300, injuredOnly.Results[0].Raw, 1e-9)
}

func TestSaveAndLoad(t *testing.T) {
	s, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	report, err := s.Run(ctx, Options{Offline: true})
	require.NoError(t, err)

	id, err := s.Save(ctx, report, true)
	require.NoError(t, err)
	require.Len(t, id, 8)

	run, err := s.Load(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, run.ID)
	require.Equal(t, diffindiff.ModeDiffInDiff, run.Mode)
	require.True(t, run.Normalized)
	require.Equal(t, report.Pairs, run.Pairs)
	require.Equal(t, report.Skips, run.Skips)
	require.Equal(t, report.Results, run.Results)

	runs, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, id, runs[0].ID)
}

// twoPairs stores two injured players who each match their own control. The
// first injured player peaks at 10 goals in 2018 like Kim, the second at 20
// goals in 2017 like Lou.
func twoPairs(t *testing.T, secondInjured string) (Study, func()) {
	b, cleanup := dbtest.New(t, "internal/study")

	first := b.Player("Jo Smith", "")
	b.Season(first.ID, 2017, "Team J1", dbtest.Line{Gls: 1})
	b.Season(first.ID, 2018, "Team J1", dbtest.Line{Gls: 10})
	b.Season(first.ID, 2020, "Team J1", dbtest.Line{Gls: 2})
	b.Injury(first.ID, "2019-06-01")
	b.Stats(first.ID, []map[string]string{
		{"season": "2017", "minutes": "1000"},
		{"season": "2020", "minutes": "500"},
	}, nil)

	second := b.Player(secondInjured, "")
	b.Season(second.ID, 2016, "Team J2", dbtest.Line{Gls: 1})
	b.Season(second.ID, 2017, "Team J2", dbtest.Line{Gls: 20})
	b.Season(second.ID, 2019, "Team J2", dbtest.Line{Gls: 2})
	b.Injury(second.ID, "2018-04-01")
	b.Stats(second.ID, []map[string]string{
		{"season": "2016", "minutes": "2000"},
		{"season": "2019", "minutes": "1200"},
	}, nil)

	kim := b.Player("Kim Control", "")
	b.Season(kim.ID, 2017, "Team K", dbtest.Line{Gls: 3})
	b.Season(kim.ID, 2018, "Team K", dbtest.Line{Gls: 10})
	b.Season(kim.ID, 2019, "Team K", dbtest.Line{Gls: 4})
	b.Stats(kim.ID, []map[string]string{
		{"season": "2017", "minutes": "900"},
		{"season": "2019", "minutes": "800"},
	}, nil)

	lou := b.Player("Lou Control", "")
	b.Season(lou.ID, 2016, "Team L", dbtest.Line{Gls: 3})
	b.Season(lou.ID, 2017, "Team L", dbtest.Line{Gls: 20})
	b.Season(lou.ID, 2018, "Team L", dbtest.Line{Gls: 4})
	b.Stats(lou.ID, []map[string]string{
		{"season": "2016", "minutes": "1800"},
		{"season": "2018", "minutes": "1500"},
	}, nil)

	s := New(b.DB, fbref.NewStore(b.DB, nil), matching.NewMatcher(b.Qry, matching.Options{}))
	return s, cleanup
}

func controls(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Control
	}
	return out
}

func TestRunTested(t *testing.T) {
	s, cleanup := twoPairs(t, "Jo Smyth")
	defer cleanup()

	report, err := s.Run(context.Background(), Options{Offline: true})
	require.NoError(t, err)
	require.Empty(t, report.Skips)
	require.Equal(t, []string{"Kim Control", "Lou Control"}, controls(report.Pairs))

	groups := report.Groups
	require.Equal(t, 2, groups.InjuredPre.SampleSize)
	require.Equal(t, 2, groups.ControlPost.SampleSize)
	require.InDelta(t, 1500, groups.InjuredPre.Mean["minutes"], 1e-9)
	require.InDelta(t, 850, groups.InjuredPost.Mean["minutes"], 1e-9)
	require.InDelta(t, 1350, groups.ControlPre.Mean["minutes"], 1e-9)
	require.InDelta(t, 1150, groups.ControlPost.Mean["minutes"], 1e-9)
	std, ok := groups.InjuredPre.Std("minutes")
	require.True(t, ok)
	require.InDelta(t, 500, std, 1e-9)

	require.Len(t, report.Results, 1)
	minutes := report.Results[0]
	require.True(t, minutes.Tested)
	require.Equal(t, 4, minutes.DF)
	require.InDelta(t, -450, minutes.Raw, 1e-9)
	// sqrt((500² + 350²)/2 + (450² + 350²)/2)
	require.InDelta(t, math.Sqrt(348750), minutes.SE, 1e-9)
	require.InDelta(t, minutes.Raw/minutes.SE, minutes.T, 1e-9)
	require.False(t, math.IsNaN(minutes.P))
	require.Greater(t, minutes.P, 0.0)
	require.Less(t, minutes.P, 1.0)
	require.InDelta(t, diffindiff.PValue(minutes.T, 4), minutes.P, 1e-12)
	require.False(t, diffindiff.Significant(minutes, diffindiff.DefaultAlpha))
}

func TestRunDuplicateInjuredName(t *testing.T) {
	s, cleanup := twoPairs(t, "Jo Smith")
	defer cleanup()

	report, err := s.Run(context.Background(), Options{Offline: true})
	require.NoError(t, err)

	// both pairs are listed but the second Jo Smith replaces the first in
	// the injured group
	require.Len(t, report.Pairs, 2)
	require.Equal(t, 1, report.Groups.InjuredPre.SampleSize)
	require.Equal(t, 1, report.Groups.InjuredPost.SampleSize)
	require.InDelta(t, 2000, report.Groups.InjuredPre.Mean["minutes"], 1e-9)
	require.InDelta(t, 1200, report.Groups.InjuredPost.Mean["minutes"], 1e-9)

	require.Equal(t, 2, report.Groups.ControlPre.SampleSize)
	require.InDelta(t, 1350, report.Groups.ControlPre.Mean["minutes"], 1e-9)
}

func TestRunSharedControl(t *testing.T) {
	b, cleanup := dbtest.New(t, "internal/study")
	defer cleanup()

	ana := b.Player("Ana Injured", "")
	b.Season(ana.ID, 2017, "Team A", dbtest.Line{Gls: 1})
	b.Season(ana.ID, 2018, "Team A", dbtest.Line{Gls: 10})
	b.Season(ana.ID, 2020, "Team A", dbtest.Line{Gls: 2})
	b.Injury(ana.ID, "2019-06-01")
	b.Stats(ana.ID, []map[string]string{
		{"season": "2017", "minutes": "1000"},
		{"season": "2020", "minutes": "500"},
	}, nil)

	bo := b.Player("Bo Injured", "")
	b.Season(bo.ID, 2016, "Team B", dbtest.Line{Gls: 1})
	b.Season(bo.ID, 2018, "Team B", dbtest.Line{Gls: 10})
	b.Season(bo.ID, 2020, "Team B", dbtest.Line{Gls: 3})
	b.Injury(bo.ID, "2019-03-01")
	b.Stats(bo.ID, []map[string]string{
		{"season": "2016", "minutes": "2000"},
		{"season": "2020", "minutes": "1500"},
	}, nil)

	kim := b.Player("Kim Control", "")
	b.Season(kim.ID, 2017, "Team K", dbtest.Line{Gls: 3})
	b.Season(kim.ID, 2018, "Team K", dbtest.Line{Gls: 10})
	b.Season(kim.ID, 2019, "Team K", dbtest.Line{Gls: 4})
	b.Stats(kim.ID, []map[string]string{
		{"season": "2017", "minutes": "900"},
		{"season": "2019", "minutes": "800"},
	}, nil)

	s := New(b.DB, fbref.NewStore(b.DB, nil), matching.NewMatcher(b.Qry, matching.Options{}))
	report, err := s.Run(context.Background(), Options{Offline: true})
	require.NoError(t, err)

	require.Equal(t, []string{"Kim Control", "Kim Control"}, controls(report.Pairs))
	require.Equal(t, 2, report.Groups.InjuredPre.SampleSize)
	require.InDelta(t, 1500, report.Groups.InjuredPre.Mean["minutes"], 1e-9)

	// the shared control is counted once
	require.Equal(t, 1, report.Groups.ControlPre.SampleSize)
	require.Equal(t, 1, report.Groups.ControlPost.SampleSize)
	require.InDelta(t, 900, report.Groups.ControlPre.Mean["minutes"], 1e-9)
	require.InDelta(t, 800, report.Groups.ControlPost.Mean["minutes"], 1e-9)

	require.Len(t, report.Results, 1)
	require.False(t, report.Results[0].Tested)
}
