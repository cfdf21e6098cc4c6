package player

import (
	"fmt"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/report"
	"acl-research/internal/roster"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Prints a player's seasons, injuries and season averages around their first injury.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)
		out := cmd.OutOrStdout()

		record, err := find(ctx, args[0])
		if err != nil {
			return err
		}
		player, err := roster.Load(ctx, value.Qry, record.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s (%s)\n", player.Name, player.Nation.String)
		report.Seasons(out, player.Seasons, value.Format)

		injury, ok := player.FirstInjuryDate()
		if !ok {
			fmt.Fprintln(out, "no recorded injury")
			return nil
		}
		fmt.Fprintf(out, "%d injuries, first on %s\n", len(player.Injuries), injury.Format(roster.DateLayout))

		report.Averages(
			out, "Before injury",
			roster.SeasonAverageKeys,
			roster.SeasonAverages(player.PreInjurySeasons()),
			value.Format,
		)
		report.Averages(
			out, "After injury",
			roster.SeasonAverageKeys,
			roster.SeasonAverages(player.PostInjurySeasons()),
			value.Format,
		)
		return nil
	},
}
