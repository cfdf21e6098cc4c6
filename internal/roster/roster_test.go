package roster

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"acl-research/internal/db"
	"acl-research/internal/db/dbtest"

	"github.com/stretchr/testify/require"
)

func years(seasons []Season) []int {
	out := make([]int, len(seasons))
	for i, s := range seasons {
		out[i] = s.Year
	}
	return out
}

func TestPlayerWindows(t *testing.T) {
	b, cleanup := dbtest.New(t, "internal/roster")
	defer cleanup()
	ctx := context.Background()

	alex := b.Player("Alex Morgan", "e0b2a5b4")
	for _, year := range []int64{2019, 2017, 2018, 2020, 2021} {
		b.Season(alex.ID, year, "Orlando Pride", dbtest.Line{Gls: 5})
	}
	b.Injury(alex.ID, "")
	b.Injury(alex.ID, "2021-03-01")
	b.Injury(alex.ID, "2020-05-01")
	b.Stats(alex.ID,
		[]map[string]string{
			{"season": "2017", "minutes": "1,000"},
			{"season": "2018", "minutes": "2,000"},
			{"season": "2021", "minutes": "500"},
		},
		[]map[string]string{
			{"season": "2017", "shots": "10", "team": "Orlando"},
			{"season": "2018", "shots": "20", "team": "Orlando"},
		},
	)

	player, err := Load(ctx, b.Qry, alex.ID)
	require.NoError(t, err)
	require.Equal(t, []int{2017, 2018, 2019, 2020, 2021}, years(player.Seasons))
	require.Len(t, player.Injuries, 3)
	require.Len(t, player.Stats, 1)

	date, ok := player.FirstInjuryDate()
	require.True(t, ok)
	require.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), date)

	require.Equal(t, []int{2017, 2018, 2019}, years(player.PreInjurySeasons()))
	require.Equal(t, []int{2020, 2021}, years(player.PostInjurySeasons()))

	last, err := player.LastPreInjurySeason()
	require.NoError(t, err)
	require.Equal(t, 2019, last.Year)

	pre, err := player.ControlPreSeasons(last)
	require.NoError(t, err)
	require.Equal(t, 2, pre.Seasons)
	require.InDelta(t, 1500, pre.PlayingTime["minutes"], 1e-9)
	require.InDelta(t, 15, pre.Shooting["shots"], 1e-9)
	require.NotContains(t, pre.Shooting, "team")

	post, err := player.ControlPostSeasons(last)
	require.NoError(t, err)
	require.Equal(t, 2, post.Seasons)
	// 2020 has no scraped row, only 2021 is averaged
	require.InDelta(t, 500, post.PlayingTime["minutes"], 1e-9)
	require.Empty(t, post.Shooting)

	injured, err := LoadInjured(ctx, b.Qry)
	require.NoError(t, err)
	require.Len(t, injured, 1)
	require.Equal(t, alex.ID, injured[0].ID)
}

func TestPlayerWithoutHistory(t *testing.T) {
	b, cleanup := dbtest.New(t, "internal/roster")
	defer cleanup()

	rookie := b.Player("Trinity Rodman", "")
	b.Season(rookie.ID, 2022, "Washington Spirit", dbtest.Line{})
	b.Injury(rookie.ID, "2022-06-01")

	player, err := Load(context.Background(), b.Qry, rookie.ID)
	require.NoError(t, err)

	require.Empty(t, player.PreInjurySeasons())
	_, err = player.LastPreInjurySeason()
	require.ErrorIs(t, err, ErrNoPreInjurySeasons)

	// no scraped stats means an empty window rather than an error
	window, err := player.ControlPostSeasons(Season{Year: 2020})
	require.NoError(t, err)
	require.True(t, window.Empty())

	_, err = Load(context.Background(), b.Qry, 999)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSearch(t *testing.T) {
	b, cleanup := dbtest.New(t, "internal/roster")
	defer cleanup()
	ctx := context.Background()

	b.Player("Alex Morgan", "")
	b.Player("Alex Long", "")
	b.Player("Megan Rapinoe", "")
	b.Player("Christen Press", "")
	b.Player("Ana Maria Smith", "")
	b.Player("Ana Sousa", "")

	testCases := []struct {
		name     string
		query    string
		opts     SearchOptions
		expected string
	}{
		{name: "exact", query: "Alex Morgan", expected: "Alex Morgan"},
		{name: "first name", query: "Megan R.", expected: "Megan Rapinoe"},
		{name: "first name case", query: "megan", expected: "Megan Rapinoe"},
		{name: "last initial", query: "Alex Morgan-Carrasco", expected: "Alex Morgan"},
		{name: "ambiguous", query: "Alex Smith"},
		// the initial comes from the second word
		{name: "middle initial", query: "Ana Maria Jones", expected: "Ana Maria Smith"},
		{name: "ambiguous first name", query: "Ana"},
		{name: "missing", query: "Sophia Smith"},
		{name: "typo", query: "Christin Press"},
		{
			name:     "typo fuzzy",
			query:    "Christin Press",
			opts:     SearchOptions{Fuzzy: true},
			expected: "Christen Press",
		},
		{
			name:  "fuzzy below threshold",
			query: "Sophia Smith",
			opts:  SearchOptions{Fuzzy: true},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			player, err := Search(ctx, b.Qry, test.query, test.opts)
			if test.expected == "" {
				require.ErrorIs(t, err, ErrPlayerNotFound)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, player.Name)
		})
	}

	_, err := Search(ctx, b.Qry, "   ", SearchOptions{})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestSeasonAverages(t *testing.T) {
	seasons := []Season{
		{PlayerSeason: db.PlayerSeason{
			Gls:   sql.NullInt64{Int64: 4, Valid: true},
			Pk:    sql.NullInt64{Int64: 1, Valid: true},
			PkAtt: sql.NullInt64{Int64: 2, Valid: true},
			N90s:  sql.NullFloat64{Float64: 10.5, Valid: true},
		}},
		{PlayerSeason: db.PlayerSeason{
			Gls:   sql.NullInt64{Int64: 6, Valid: true},
			Pk:    sql.NullInt64{Int64: 0, Valid: true},
			PkAtt: sql.NullInt64{Int64: 0, Valid: true},
		}},
	}

	averages := SeasonAverages(seasons)
	require.InDelta(t, 5, averages["goals"], 1e-9)
	require.InDelta(t, 10.5, averages["nineties"], 1e-9)
	require.InDelta(t, 0.5, averages["penalty_kicks_scored"], 1e-9)
	// the season without attempts has no percentage
	require.InDelta(t, 50, averages["penalty_kick_percentage"], 1e-9)
	require.NotContains(t, averages, "assists")
	for key := range averages {
		require.Contains(t, SeasonAverageKeys, key)
	}

	require.Empty(t, SeasonAverages(nil))
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Time
		ok       bool
	}{
		{input: "03/07/21", expected: time.Date(2021, 3, 7, 0, 0, 0, 0, time.UTC), ok: true},
		{input: "3/7/21", expected: time.Date(2021, 3, 7, 0, 0, 0, 0, time.UTC), ok: true},
		{input: " 12/31/19 ", expected: time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC), ok: true},
		{input: ""},
		{input: "2021-03-07"},
		{input: "unknown"},
	}
	for _, test := range testCases {
		date, ok := ParseDate(test.input)
		require.Equal(t, test.ok, ok, test.input)
		if test.ok {
			require.Equal(t, test.expected, date, test.input)
		}
	}
}
