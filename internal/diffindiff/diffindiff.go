package diffindiff

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"acl-research/internal/aggregate"

	"gonum.org/v1/gonum/stat/distuv"
)

type Mode string

const (
	// injured change minus control change
	ModeDiffInDiff Mode = "did"
	// change of the injured group only
	ModeInjured Mode = "injured"
	// change of the control group only
	ModeControl Mode = "control"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDiffInDiff, "diff-in-diff":
		return ModeDiffInDiff, nil
	case ModeInjured:
		return ModeInjured, nil
	case ModeControl:
		return ModeControl, nil
	}
	return "", fmt.Errorf("unknown mode %q, expected one of did, injured, control", s)
}

// Groups are the four windows compared by the analysis.
type Groups struct {
	InjuredPre  aggregate.GroupStats
	InjuredPost aggregate.GroupStats
	ControlPre  aggregate.GroupStats
	ControlPost aggregate.GroupStats
}

type Result struct {
	Stat        string
	DiffInjured float64
	DiffControl float64
	// the difference selected by the mode
	Raw float64
	// pooled standard error of the four groups
	SE float64
	DF int
	// false when the stat can't be normalized (zero error, missing
	// deviation or empty group), Normalized, T and P are then zero
	Tested     bool
	Normalized float64
	T          float64
	P          float64
}

func pooledSE(pre, post aggregate.GroupStats, stat string) (float64, bool) {
	sdPre, okPre := pre.Std(stat)
	sdPost, okPost := post.Std(stat)
	if !okPre || !okPost || pre.SampleSize == 0 || post.SampleSize == 0 {
		return 0, false
	}
	return math.Sqrt(
		sdPre*sdPre/float64(pre.SampleSize) +
			sdPost*sdPost/float64(post.SampleSize),
	), true
}

// PValue is the two-sided p value of t under a Student t distribution with
// `df` degrees of freedom.
func PValue(t float64, df int) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return 2 * dist.Survival(math.Abs(t))
}

// Analyze computes the change of every stat present in all four groups.
// Results are sorted by stat name.
func Analyze(g Groups, mode Mode) []Result {
	var results []Result
	df := g.InjuredPre.SampleSize + g.InjuredPost.SampleSize +
		g.ControlPre.SampleSize + g.ControlPost.SampleSize - 4

	for _, stat := range g.InjuredPre.Stats() {
		_, inPost := g.InjuredPost.Mean[stat]
		_, inControlPre := g.ControlPre.Mean[stat]
		_, inControlPost := g.ControlPost.Mean[stat]
		if !inPost || !inControlPre || !inControlPost {
			continue
		}

		r := Result{
			Stat:        stat,
			DiffInjured: g.InjuredPost.Mean[stat] - g.InjuredPre.Mean[stat],
			DiffControl: g.ControlPost.Mean[stat] - g.ControlPre.Mean[stat],
			DF:          df,
		}
		switch mode {
		case ModeInjured:
			r.Raw = r.DiffInjured
		case ModeControl:
			r.Raw = r.DiffControl
		default:
			r.Raw = r.DiffInjured - r.DiffControl
		}

		seInjured, okInjured := pooledSE(g.InjuredPre, g.InjuredPost, stat)
		seControl, okControl := pooledSE(g.ControlPre, g.ControlPost, stat)
		if okInjured && okControl {
			r.SE = math.Sqrt(seInjured*seInjured + seControl*seControl)
		}
		if r.SE != 0 && df >= 1 {
			r.Tested = true
			r.Normalized = r.Raw / r.SE
			r.T = r.Normalized
			r.P = PValue(r.T, df)
		}
		results = append(results, r)
	}
	return results
}

// Reportable keeps the tested results that have a display label, ordered
// by ascending p value.
func Reportable(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Tested {
			continue
		}
		if _, ok := Labels[r.Stat]; !ok {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].P != out[j].P {
			return out[i].P < out[j].P
		}
		return Label(out[i].Stat) < Label(out[j].Stat)
	})
	return out
}

const DefaultAlpha = 0.05

func Significant(r Result, alpha float64) bool {
	return r.Tested && r.P < alpha
}
