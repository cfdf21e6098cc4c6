package roster

import (
	"database/sql"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// SpreadsheetDateLayout is the month/day/two digit year layout used by the
// injury spreadsheets.
const SpreadsheetDateLayout = "01/02/06"

// ParseDate parses a spreadsheet date, reporting false if it is malformed.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(SpreadsheetDateLayout, s)
	if err != nil {
		// single digit months and days ("3/7/21") are common in exports
		t, err = time.Parse("1/2/06", s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

func nullInt(v sql.NullInt64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: float64(v.Int64), Valid: v.Valid}
}

func penaltyPercentage(s Season) sql.NullFloat64 {
	if !s.Pk.Valid || !s.PkAtt.Valid || s.PkAtt.Int64 <= 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{
		Float64: float64(s.Pk.Int64) / float64(s.PkAtt.Int64) * 100,
		Valid:   true,
	}
}

func seasonValues(s Season) map[string]sql.NullFloat64 {
	return map[string]sql.NullFloat64{
		"goals":                   nullInt(s.Gls),
		"matches_played":          nullInt(s.Mp),
		"minutes":                 nullInt(s.Min),
		"nineties":                s.N90s,
		"starts":                  nullInt(s.Starts),
		"substitutions":           nullInt(s.Subs),
		"unused_substitutions":    nullInt(s.Unsub),
		"assists":                 nullInt(s.Ast),
		"goals_and_assists":       nullInt(s.GA),
		"goals_penalty_kicks":     nullInt(s.GPk),
		"penalty_kicks_scored":    nullInt(s.Pk),
		"penalty_kicks_attempted": nullInt(s.PkAtt),
		"penalty_kicks_missed":    nullInt(s.PkM),
		"penalty_kick_percentage": penaltyPercentage(s),
	}
}

// SeasonAverageKeys lists the keys of SeasonAverages in display order.
var SeasonAverageKeys = []string{
	"matches_played",
	"starts",
	"substitutions",
	"unused_substitutions",
	"minutes",
	"nineties",
	"goals",
	"assists",
	"goals_and_assists",
	"goals_penalty_kicks",
	"penalty_kicks_scored",
	"penalty_kicks_attempted",
	"penalty_kicks_missed",
	"penalty_kick_percentage",
}

// SeasonAverages is the mean of every spreadsheet stat over `seasons`.
// Missing values are skipped, a stat with no values is omitted.
func SeasonAverages(seasons []Season) map[string]float64 {
	values := map[string][]float64{}
	for _, s := range seasons {
		for key, v := range seasonValues(s) {
			if !v.Valid {
				continue
			}
			values[key] = append(values[key], v.Float64)
		}
	}

	out := map[string]float64{}
	for key, xs := range values {
		out[key] = stat.Mean(xs, nil)
	}
	return out
}
