package fbrefcmd

import (
	"fmt"
	"log/slog"
	"time"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/db"
	"acl-research/internal/roster"
	"acl-research/lib/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	syncCmd.Flags().String("name", "", "only sync this player")
	syncCmd.Flags().Bool("injured-only", false, "only sync players with a recorded injury")
	syncCmd.Flags().Bool("use-browser", false, "fetch pages with a headless browser")
	syncCmd.Flags().Bool("fuzzy", false, "fall back to fuzzy name matching for --name")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scrapes the stats page of every player that has no stored stats yet and removes duplicate records.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)

		name, _ := cmd.Flags().GetString("name")
		injuredOnly, _ := cmd.Flags().GetBool("injured-only")
		useBrowser, _ := cmd.Flags().GetBool("use-browser")
		fuzzy, _ := cmd.Flags().GetBool("fuzzy")

		var players []db.Player
		switch {
		case name != "":
			player, err := roster.Search(ctx, value.Qry, name, value.SearchOptions(fuzzy))
			if err != nil {
				return fmt.Errorf("find '%s': %w", name, err)
			}
			players = []db.Player{player}
		case injuredOnly:
			var err error
			players, err = value.Qry.ListInjuredPlayers(ctx)
			if err != nil {
				return err
			}
		default:
			var err error
			players, err = value.Qry.ListPlayers(ctx)
			if err != nil {
				return err
			}
		}

		store, release, err := value.Store(ctx, false, useBrowser)
		if err != nil {
			return err
		}
		defer release()

		telemetry.InstrumentPerfStats(ctx, time.Second*15)

		slog.InfoContext(ctx, "syncing fbref stats", "players", len(players))
		summary, err := store.Sync(ctx, players)
		if err != nil {
			return err
		}
		fmt.Fprintf(
			cmd.OutOrStdout(),
			"cached %d, fetched %d, failed %d\n",
			summary.Cached, summary.Fetched, summary.Failed,
		)
		return nil
	},
}
