package runs

import (
	"fmt"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/fbref"
	"acl-research/internal/report"
	"acl-research/internal/study"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "runs",
	Short: "The 'runs' subcommand reads comparison reports saved with 'compare --save'.",
}

func init() {
	listCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(showCmd)
}

func newStudy(value *globals.Value) study.Study {
	return study.New(value.DB, fbref.NewStore(value.DB, nil), value.Matcher())
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists saved runs, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)
		limit, _ := cmd.Flags().GetInt("limit")

		saved, err := newStudy(value).List(ctx, limit)
		if err != nil {
			return err
		}
		report.Runs(cmd.OutOrStdout(), saved, value.Format)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Prints the results of a saved run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)
		out := cmd.OutOrStdout()

		run, err := newStudy(value).Load(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load run %s: %w", args[0], err)
		}

		fmt.Fprintf(out, "run %s from %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04"))
		report.Results(out, run.Results, report.ResultOptions{
			Mode:       run.Mode,
			Normalized: run.Normalized,
			Format:     value.Format,
		})
		report.Pairs(out, run.Pairs, value.Format)
		if len(run.Skips) > 0 {
			report.Skips(out, run.Skips, value.Format)
		}
		return nil
	},
}
