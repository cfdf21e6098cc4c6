package player

import (
	"context"
	"fmt"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/db"
	"acl-research/internal/roster"

	"github.com/spf13/cobra"
)

var fuzzy bool

var RootCmd = &cobra.Command{
	Use:   "player",
	Short: "The 'player' subcommand looks up and edits stored players.",
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&fuzzy, "fuzzy", false, "fall back to fuzzy name matching")
}

func find(ctx context.Context, name string) (db.Player, error) {
	value := globals.Get(ctx)
	player, err := roster.Search(ctx, value.Qry, name, value.SearchOptions(fuzzy))
	if err != nil {
		return db.Player{}, fmt.Errorf("find '%s': %w", name, err)
	}
	return player, nil
}
