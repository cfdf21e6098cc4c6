package cmd

import (
	"fmt"
	"os"

	"acl-research/internal/report"
	"acl-research/internal/transcript"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	sesCmd.Flags().String("group", "SES", "column to group participants by")
	rootCmd.AddCommand(sesCmd)
}

var sesCmd = &cobra.Command{
	Use:   "ses <csv>",
	Short: "Prints the mean of every numeric column per socioeconomic group.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormat()
		if err != nil {
			return err
		}
		group, _ := cmd.Flags().GetString("group")

		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		means, err := transcript.GroupMeans(file, group)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		t := report.NewTable(cmd.OutOrStdout())
		header := table.Row{means.GroupColumn, "n"}
		for _, col := range means.Columns {
			header = append(header, col)
		}
		t.AppendHeader(header)
		for _, g := range means.Groups {
			row := table.Row{g.Group, g.Count}
			for i := range means.Columns {
				if !g.Present[i] {
					row = append(row, "")
					continue
				}
				row = append(row, fmt.Sprintf("%.2f", g.Means[i]))
			}
			t.AppendRow(row)
		}
		report.Render(t, f)
		return nil
	},
}
