package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupStats summarizes one stat window (e.g. injured players before
// injury) across players.
type GroupStats struct {
	Mean map[string]float64
	// population standard deviation, absent when a stat has one value
	StdDev map[string]float64
	Count  map[string]int
	// number of players with a non-empty window
	SampleSize int
}

func (g GroupStats) Std(stat string) (float64, bool) {
	v, ok := g.StdDev[stat]
	return v, ok
}

// Stats returns the stats of the group in alphabetical order.
func (g GroupStats) Stats() []string {
	keys := make([]string, 0, len(g.Mean))
	for k := range g.Mean {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Combine folds the shooting and playing time averages of every non-empty
// window into a mean and standard deviation per stat. A stat present in
// both tables contributes both values.
func Combine(windows []Window) GroupStats {
	values := map[string][]float64{}
	add := func(averages map[string]float64) {
		for key, v := range averages {
			values[key] = append(values[key], v)
		}
	}

	out := GroupStats{
		Mean:   map[string]float64{},
		StdDev: map[string]float64{},
		Count:  map[string]int{},
	}
	for _, w := range windows {
		if w.Empty() {
			continue
		}
		out.SampleSize++
		add(w.Shooting)
		add(w.PlayingTime)
	}

	for key, xs := range values {
		mean, variance := stat.PopMeanVariance(xs, nil)
		out.Mean[key] = mean
		out.Count[key] = len(xs)
		if len(xs) > 1 {
			// rounding can push the variance of equal values below 0
			out.StdDev[key] = math.Sqrt(math.Max(variance, 0))
		}
	}
	return out
}
