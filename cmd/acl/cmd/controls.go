package cmd

import (
	"fmt"
	"os"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/report"
	"acl-research/internal/roster"

	"github.com/spf13/cobra"
)

func init() {
	controlsCmd.Flags().Bool("fuzzy", false, "fall back to fuzzy name matching")
	rootCmd.AddCommand(controlsCmd)
}

var controlsCmd = &cobra.Command{
	Use:   "controls <name>",
	Short: "Lists the closest control candidates of an injured player.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)
		fuzzy, _ := cmd.Flags().GetBool("fuzzy")

		record, err := roster.Search(ctx, value.Qry, args[0], value.SearchOptions(fuzzy))
		if err != nil {
			return fmt.Errorf("find '%s': %w", args[0], err)
		}
		player, err := roster.Load(ctx, value.Qry, record.ID)
		if err != nil {
			return err
		}
		anchor, err := player.LastPreInjurySeason()
		if err != nil {
			return fmt.Errorf("%s: %w", player.Name, err)
		}

		matcher := value.Matcher()
		matches, err := matcher.FindControlMatches(ctx, player.Player, anchor)
		if err != nil {
			return err
		}
		eligible, err := matcher.EligibleControls(ctx, matches)
		if err != nil {
			return err
		}

		fmt.Printf("%s, anchored on %d (%s)\n", player.Name, anchor.Year, anchor.Team)
		report.Candidates(os.Stdout, matches, eligible, value.Format)
		return nil
	},
}
