package matching

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"

	"acl-research/internal/db"
	"acl-research/internal/db/dbtest"
	"acl-research/internal/roster"
	"acl-research/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	season := db.PlayerSeason{
		Gls:  sql.NullInt64{Int64: 3, Valid: true},
		N90s: sql.NullFloat64{Float64: 12.5, Valid: true},
	}
	vec, err := Vector(season, DefaultColumns)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 0, 0, 12.5, 0, 0, 0, 0, 0}, vec)

	_, err = Vector(season, []string{"gls", "xg"})
	require.ErrorContains(t, err, "xg")
}

type fixture struct {
	b       dbtest.Builder
	injured db.Player
	control db.Player
}

func setup(t *testing.T) (fixture, func()) {
	b, cleanup := dbtest.New(t, "internal/matching")

	injured := b.Player("Injured Player", "aaaa1111")
	b.Season(injured.ID, 2018, "Team A", dbtest.Line{Gls: 5, Mp: 20, Min: 1800})
	b.Season(injured.ID, 2019, "Team A", dbtest.Line{Gls: 10, Mp: 20, Min: 1800})
	b.Injury(injured.ID, "2020-04-01")

	closeInjured := b.Player("Close But Injured", "")
	b.Season(closeInjured.ID, 2019, "Team B", dbtest.Line{Gls: 10, Mp: 20, Min: 1800})
	b.Injury(closeInjured.ID, "2021-04-01")

	control := b.Player("Control Player", "bbbb2222")
	b.Season(control.ID, 2018, "Team C", dbtest.Line{Gls: 9, Mp: 20, Min: 1800})
	b.Season(control.ID, 2019, "Team C", dbtest.Line{Gls: 2, Mp: 10, Min: 500})

	retired := b.Player("Retired Player", "")
	b.Season(retired.ID, 2019, "Team D", dbtest.Line{Gls: 10, Mp: 20, Min: 1790})

	far := b.Player("Far Player", "")
	b.Season(far.ID, 2019, "Team E", dbtest.Line{})

	return fixture{b: b, injured: injured, control: control}, cleanup
}

func names(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.PlayerName
	}
	return out
}

func TestFindControlMatches(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	player, err := roster.Load(ctx, f.b.Qry, f.injured.ID)
	require.NoError(t, err)
	anchor, err := player.LastPreInjurySeason()
	require.NoError(t, err)
	require.Equal(t, 2019, anchor.Year)

	matcher := NewMatcher(f.b.Qry, Options{})
	matches, err := matcher.FindControlMatches(ctx, player.Player, anchor)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Close But Injured",
		"Control Player",
		"Retired Player",
		"Control Player",
		"Far Player",
	}, names(matches))
	require.InDelta(t, 0, matches[0].Distance, 1e-9)
	require.InDelta(t, 1, matches[1].Distance, 1e-9)
	require.InDelta(t, 10, matches[2].Distance, 1e-9)
	require.Equal(t, int64(2018), matches[1].Year)

	top, err := NewMatcher(f.b.Qry, Options{TopN: 2}).FindControlMatches(ctx, player.Player, anchor)
	require.NoError(t, err)
	require.Len(t, top, 2)

	eligible, err := matcher.EligibleControls(ctx, matches)
	require.NoError(t, err)
	require.Equal(t, []string{"Control Player"}, names(eligible))
	require.Equal(t, int64(2018), eligible[0].Year)
}

func TestFindControl(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	player, err := roster.Load(ctx, f.b.Qry, f.injured.ID)
	require.NoError(t, err)

	matcher := NewMatcher(f.b.Qry, Options{})
	control, anchor, err := matcher.FindControl(ctx, player)
	require.NoError(t, err)
	require.Equal(t, 2019, anchor.Year)
	require.Equal(t, f.control.ID, control.PlayerSeason.PlayerID)
	require.Equal(t, "bbbb2222", control.UniqueID.String)

	// the closest candidate alone is injured
	_, _, err = NewMatcher(f.b.Qry, Options{TopN: 1}).FindControl(ctx, player)
	require.ErrorIs(t, err, ErrNoControlMatch)

	rookie := f.b.Player("Rookie", "")
	f.b.Season(rookie.ID, 2022, "Team F", dbtest.Line{Gls: 1})
	f.b.Injury(rookie.ID, "2022-05-01")
	rookiePlayer, err := roster.Load(ctx, f.b.Qry, rookie.ID)
	require.NoError(t, err)
	_, _, err = matcher.FindControl(ctx, rookiePlayer)
	require.ErrorIs(t, err, roster.ErrNoPreInjurySeasons)
}

func TestRandomRoster(t *testing.T) {
	b, cleanup := dbtest.New(t, "internal/matching")
	defer cleanup()
	ctx := context.Background()
	r := rand.New(rand.NewSource(7))

	injured := b.Player("Injured Player", "aaaa1111")
	b.Season(injured.ID, 2019, "Team A", dbtest.Line{Gls: 6, Mp: 20, Min: 1500})
	b.Injury(injured.ID, "2020-04-01")

	// players that could serve as a control
	eligible := map[int64]bool{}
	for i := 0; i < 40; i++ {
		uniqueID := ""
		if testutil.RandomSwitch(r, 0.5) {
			uniqueID = testutil.RandomString(r, 8)
		}
		p := b.Player(testutil.RandomString(r, 6)+" "+testutil.RandomString(r, 8), uniqueID)
		team := "Team " + testutil.RandomString(r, 3)
		b.Season(p.ID, 2019, team, dbtest.Line{
			Gls: r.Int63n(12),
			Mp:  r.Int63n(24) + 1,
			Min: r.Int63n(2000) + 1,
		})

		wasInjured := testutil.RandomSwitch(r, 0.3)
		if wasInjured {
			b.Injury(p.ID, "2021-06-01")
		}
		keptPlaying := testutil.RandomSwitch(r, 0.6)
		if keptPlaying {
			b.Season(p.ID, 2020, team, dbtest.Line{Gls: 1, Mp: 1, Min: 90})
		}
		eligible[p.ID] = !wasInjured && keptPlaying
	}

	player, err := roster.Load(ctx, b.Qry, injured.ID)
	require.NoError(t, err)
	anchor, err := player.LastPreInjurySeason()
	require.NoError(t, err)

	matcher := NewMatcher(b.Qry, Options{TopN: 100})
	matches, err := matcher.FindControlMatches(ctx, player.Player, anchor)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for i, m := range matches {
		require.NotEqual(t, injured.ID, m.PlayerSeason.PlayerID)
		if i > 0 {
			require.LessOrEqual(t, matches[i-1].Distance, m.Distance)
		}
	}

	filtered, err := matcher.EligibleControls(ctx, matches)
	require.NoError(t, err)
	for _, m := range filtered {
		require.True(t, eligible[m.PlayerSeason.PlayerID], m.PlayerName)
		require.Equal(t, int64(2019), m.Year)
	}
}
