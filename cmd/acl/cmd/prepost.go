package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/prepost"
	"acl-research/internal/report"

	"github.com/spf13/cobra"
)

func init() {
	prepostCmd.Flags().StringP("out", "o", "acl_prepost.json", "json file the averages are written to, an existing one is reused")
	prepostCmd.Flags().Bool("use-browser", false, "fetch pages with a headless browser")
	rootCmd.AddCommand(prepostCmd)
}

var prepostCmd = &cobra.Command{
	Use:   "prepost <csv>",
	Short: "Averages each listed player's fbref stats before and after their injury year.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)
		out, _ := cmd.Flags().GetString("out")
		useBrowser, _ := cmd.Flags().GetBool("use-browser")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		entries, err := prepost.ReadEntries(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		fetcher, release, err := value.Fetcher(ctx, useBrowser)
		if err != nil {
			return err
		}
		defer release()

		results, reused, err := prepost.Run(ctx, entries, prepost.Options{
			OutputPath: out,
			Fetcher:    fetcher,
		})
		if err != nil {
			return err
		}
		if reused {
			slog.InfoContext(ctx, "reusing existing results", "path", out)
		}

		report.Spreads(os.Stdout, prepost.Summarize(results), value.Format)
		return nil
	},
}
