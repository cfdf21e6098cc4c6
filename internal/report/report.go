// Package report renders analysis output as tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"acl-research/internal/diffindiff"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q, expected one of table, csv, markdown, html", s)
}

// NewTable creates a rounded table that renders to `w`.
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func Render(t table.Writer, format Format) {
	switch format {
	case FormatCSV:
		t.RenderCSV()
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatHTML:
		t.RenderHTML()
	default:
		t.Render()
	}
}

func modeTitle(mode diffindiff.Mode) string {
	switch mode {
	case diffindiff.ModeInjured:
		return "Injured players, post minus pre injury"
	case diffindiff.ModeControl:
		return "Control players, post minus pre match"
	}
	return "Difference in differences, injured minus control"
}

type ResultOptions struct {
	Mode diffindiff.Mode
	// show the change divided by its standard error instead of the raw change
	Normalized bool
	// defaults to diffindiff.DefaultAlpha
	Alpha  float64
	Format Format
}

// Results writes the labelled, tested results ordered by p value.
func Results(w io.Writer, results []diffindiff.Result, opts ResultOptions) {
	alpha := opts.Alpha
	if alpha <= 0 {
		alpha = diffindiff.DefaultAlpha
	}

	kind := "raw"
	change := "Raw Δ"
	if opts.Normalized {
		kind = "normalized"
		change = "Normalized Δ"
	}

	t := NewTable(w)
	t.SetTitle(fmt.Sprintf("%s (%s)", modeTitle(opts.Mode), kind))
	t.AppendHeader(table.Row{"Statistic", change, "t", "p", "Significant"})
	for _, r := range diffindiff.Reportable(results) {
		value := r.Raw
		if opts.Normalized {
			value = r.Normalized
		}
		significant := ""
		if diffindiff.Significant(r, alpha) {
			significant = "yes"
		}
		t.AppendRow(table.Row{
			diffindiff.Label(r.Stat),
			fmt.Sprintf("%.2f", value),
			fmt.Sprintf("%.2f", r.T),
			fmt.Sprintf("%.3f", r.P),
			significant,
		})
	}
	Render(t, opts.Format)
}
