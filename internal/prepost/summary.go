package prepost

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Spread is the five number summary of one stat over every player.
type Spread struct {
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

func spread(values []float64) Spread {
	sort.Float64s(values)
	return Spread{
		N:      len(values),
		Min:    floats.Min(values),
		Q1:     stat.Quantile(0.25, stat.Empirical, values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, values, nil),
		Max:    floats.Max(values),
	}
}

type StatSummary struct {
	Stat string
	Pre  Spread
	Post Spread
}

// Summarize describes the distribution of every stat before and after the
// injury, ordered by stat name. Players missing a stat are left out of its
// summary, a stat missing on one side has a zero Spread there.
func Summarize(results []PlayerResult) []StatSummary {
	pre := map[string][]float64{}
	post := map[string][]float64{}
	for _, r := range results {
		for k, v := range r.Pre.Flatten() {
			pre[k] = append(pre[k], v)
		}
		for k, v := range r.Post.Flatten() {
			post[k] = append(post[k], v)
		}
	}

	keys := map[string]struct{}{}
	for k := range pre {
		keys[k] = struct{}{}
	}
	for k := range post {
		keys[k] = struct{}{}
	}

	out := make([]StatSummary, 0, len(keys))
	for k := range keys {
		s := StatSummary{Stat: k}
		if values := pre[k]; len(values) > 0 {
			s.Pre = spread(values)
		}
		if values := post[k]; len(values) > 0 {
			s.Post = spread(values)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Stat < out[j].Stat
	})
	return out
}
