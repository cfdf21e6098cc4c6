// Package aggregate averages scraped fbref rows over windows of seasons and
// combines those windows into per-group statistics.
package aggregate

import (
	"strconv"
	"strings"

	"acl-research/internal/fbref"

	"gonum.org/v1/gonum/stat"
)

// ParseValue parses a table cell as a number. Thousands separators are
// ignored, empty or non-numeric cells report false.
func ParseValue(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Window holds the averaged stats of one player over a set of seasons.
type Window struct {
	// number of seasons the window was built from, 0 means no data
	Seasons     int
	Shooting    map[string]float64
	PlayingTime map[string]float64
}

func (w Window) Empty() bool {
	return w.Seasons == 0
}

// CollectWindow keeps the rows whose season matches one of `years` and
// averages every stat over the kept rows of each table. Cells that don't
// parse count as 0, stats that never parse are dropped.
func CollectWindow(tables fbref.Tables, years []int) Window {
	if len(years) == 0 {
		return Window{}
	}

	wanted := make(map[string]struct{}, len(years))
	for _, y := range years {
		wanted[strconv.Itoa(y)] = struct{}{}
	}
	filter := func(rows []fbref.Row) []fbref.Row {
		var out []fbref.Row
		for _, row := range rows {
			if _, ok := wanted[strings.TrimSpace(row.Season())]; ok {
				out = append(out, row)
			}
		}
		return out
	}

	return Window{
		Seasons:     len(years),
		Shooting:    AverageRows(filter(tables.Shooting)),
		PlayingTime: AverageRows(filter(tables.PlayingTime)),
	}
}

// AverageRows averages every numeric stat over `rows`. A row where the stat
// doesn't parse counts as 0.
func AverageRows(rows []fbref.Row) map[string]float64 {
	out := map[string]float64{}
	if len(rows) == 0 {
		return out
	}

	values := map[string][]float64{}
	for i, row := range rows {
		for key, value := range row {
			if key == fbref.SeasonKey {
				continue
			}
			v, ok := ParseValue(value)
			if !ok {
				continue
			}
			xs, seen := values[key]
			if !seen {
				xs = make([]float64, len(rows))
				values[key] = xs
			}
			xs[i] = v
		}
	}
	for key, xs := range values {
		out[key] = stat.Mean(xs, nil)
	}
	return out
}

// MeanValues averages every stat over the rows where it parses as a number.
// The season column is skipped.
func MeanValues(rows []fbref.Row) map[string]float64 {
	values := map[string][]float64{}
	for _, row := range rows {
		for key, value := range row {
			if key == fbref.SeasonKey {
				continue
			}
			v, ok := ParseValue(value)
			if !ok {
				continue
			}
			values[key] = append(values[key], v)
		}
	}
	out := make(map[string]float64, len(values))
	for key, xs := range values {
		out[key] = stat.Mean(xs, nil)
	}
	return out
}
