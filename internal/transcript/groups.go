package transcript

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"acl-research/lib/csvutil"

	"gonum.org/v1/gonum/stat"
)

var ErrNoNumericColumns = errors.New("no numeric columns")

type GroupMean struct {
	Group string
	// number of rows in the group
	Count int
	// indexed like GroupTable.Columns, Present is false for a column with no
	// values in the group
	Means   []float64
	Present []bool
}

type GroupTable struct {
	GroupColumn string
	Columns     []string
	Groups      []GroupMean
}

func parseNumber(s string) (float64, bool) {
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

// GroupMeans averages every numeric column of a csv per value of
// `groupColumn`, which may be a prefix of the header name. A column is
// numeric when each of its non-empty cells is a number. Rows with an empty
// group are ignored and groups are sorted by name.
func GroupMeans(r io.Reader, groupColumn string) (GroupTable, error) {
	header, records, err := csvutil.ReadWithHeader(r, groupColumn)
	if err != nil {
		return GroupTable{}, err
	}
	groupColumn, _ = csvutil.Column(header, groupColumn)

	var columns []string
	for _, col := range header {
		if col == groupColumn || col == "" {
			continue
		}
		numeric := false
		for _, rec := range records {
			cell := rec.Get(col)
			if cell == "" {
				continue
			}
			if _, ok := parseNumber(cell); !ok {
				numeric = false
				break
			}
			numeric = true
		}
		if numeric {
			columns = append(columns, col)
		}
	}
	if len(columns) == 0 {
		return GroupTable{}, ErrNoNumericColumns
	}

	type group struct {
		count  int
		values [][]float64
	}
	groups := map[string]*group{}
	for _, rec := range records {
		name := rec.Get(groupColumn)
		if name == "" {
			continue
		}
		g, ok := groups[name]
		if !ok {
			g = &group{values: make([][]float64, len(columns))}
			groups[name] = g
		}
		g.count++
		for i, col := range columns {
			v, ok := parseNumber(rec.Get(col))
			if !ok {
				continue
			}
			g.values[i] = append(g.values[i], v)
		}
	}
	if len(groups) == 0 {
		return GroupTable{}, fmt.Errorf("no rows with a value for '%s'", groupColumn)
	}

	out := GroupTable{GroupColumn: groupColumn, Columns: columns}
	for name, g := range groups {
		mean := GroupMean{
			Group:   name,
			Count:   g.count,
			Means:   make([]float64, len(columns)),
			Present: make([]bool, len(columns)),
		}
		for i, xs := range g.values {
			if len(xs) == 0 {
				continue
			}
			mean.Means[i] = stat.Mean(xs, nil)
			mean.Present[i] = true
		}
		out.Groups = append(out.Groups, mean)
	}
	sort.Slice(out.Groups, func(i, j int) bool {
		return out.Groups[i].Group < out.Groups[j].Group
	})
	return out, nil
}
