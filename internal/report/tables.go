package report

import (
	"fmt"
	"io"
	"sort"

	"acl-research/internal/matching"
	"acl-research/internal/prepost"
	"acl-research/internal/roster"
	"acl-research/internal/study"

	"github.com/jedib0t/go-pretty/v6/table"
)

func Pairs(w io.Writer, pairs []study.Pair, format Format) {
	t := NewTable(w)
	t.SetTitle("Matched players")
	t.AppendHeader(table.Row{"Injured", "Anchor", "Control", "Control season", "Distance"})
	for _, p := range pairs {
		t.AppendRow(table.Row{p.Injured, p.AnchorYear, p.Control, p.ControlYear, fmt.Sprintf("%.2f", p.Distance)})
	}
	Render(t, format)
}

func Skips(w io.Writer, skips []study.Skip, format Format) {
	t := NewTable(w)
	t.SetTitle("Skipped players")
	t.AppendHeader(table.Row{"Player", "Reason"})
	for _, s := range skips {
		t.AppendRow(table.Row{s.Player, s.Reason})
	}
	Render(t, format)
}

// Candidates lists ranked control matches, `eligible` marks the ones that
// passed the control filters.
func Candidates(w io.Writer, matches []matching.Match, eligible []matching.Match, format Format) {
	ok := map[int64]bool{}
	for _, m := range eligible {
		ok[m.PlayerSeason.ID] = true
	}

	t := NewTable(w)
	t.SetTitle("Control candidates")
	t.AppendHeader(table.Row{"#", "Player", "Season", "Team", "Distance", "Eligible"})
	for i, m := range matches {
		mark := ""
		if ok[m.PlayerSeason.ID] {
			mark = "yes"
		}
		t.AppendRow(table.Row{i + 1, m.PlayerName, m.Year, m.Team, fmt.Sprintf("%.2f", m.Distance), mark})
	}
	Render(t, format)
}

// Seasons lists the stat lines of a player.
func Seasons(w io.Writer, seasons []roster.Season, format Format) {
	nullable := func(valid bool, v any) any {
		if !valid {
			return ""
		}
		return v
	}

	t := NewTable(w)
	t.AppendHeader(table.Row{"Season", "Team", "Comp", "MP", "Min", "Gls", "Ast", "Starts"})
	for _, s := range seasons {
		t.AppendRow(table.Row{
			s.Year,
			s.Team,
			s.Comp,
			nullable(s.Mp.Valid, s.Mp.Int64),
			nullable(s.Min.Valid, s.Min.Int64),
			nullable(s.Gls.Valid, s.Gls.Int64),
			nullable(s.Ast.Valid, s.Ast.Int64),
			nullable(s.Starts.Valid, s.Starts.Int64),
		})
	}
	Render(t, format)
}

// Averages writes one row per stat in `keys` order, stats missing from
// `values` are left out.
func Averages(w io.Writer, title string, keys []string, values map[string]float64, format Format) {
	t := NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Statistic", "Average"})
	for _, k := range keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{k, fmt.Sprintf("%.2f", v)})
	}
	Render(t, format)
}

func Runs(w io.Writer, runs []study.SavedRun, format Format) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"ID", "Created", "Mode", "Normalized", "Pairs", "Results"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Mode,
			r.Normalized,
			len(r.Pairs),
			len(r.Results),
		})
	}
	Render(t, format)
}

// Spreads writes the pre and post distribution of every stat.
func Spreads(w io.Writer, summaries []prepost.StatSummary, format Format) {
	t := NewTable(w)
	t.SetTitle("Statistics before and after injury")
	t.AppendHeader(table.Row{"Statistic", "Window", "n", "Min", "Q1", "Median", "Q3", "Max"})
	num := func(v float64) string { return fmt.Sprintf("%.2f", v) }
	sorted := append([]prepost.StatSummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Stat < sorted[j].Stat })
	for _, s := range sorted {
		for _, window := range []struct {
			name   string
			spread prepost.Spread
		}{{"pre", s.Pre}, {"post", s.Post}} {
			if window.spread.N == 0 {
				continue
			}
			sp := window.spread
			t.AppendRow(table.Row{s.Stat, window.name, sp.N, num(sp.Min), num(sp.Q1), num(sp.Median), num(sp.Q3), num(sp.Max)})
		}
	}
	Render(t, format)
}
