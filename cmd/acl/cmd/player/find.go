package player

import (
	"acl-research/cmd/acl/globals"
	"acl-research/internal/report"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Resolves a name the way spreadsheet imports do.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		player, err := find(ctx, args[0])
		if err != nil {
			return err
		}

		t := report.NewTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"ID", "Name", "Nation", "fbref id", "fbref link"})
		t.AppendRow(table.Row{
			player.ID,
			player.Name,
			player.Nation.String,
			player.UniqueID.String,
			player.FbrefLink.String,
		})
		report.Render(t, globals.Get(ctx).Format)
		return nil
	},
}
