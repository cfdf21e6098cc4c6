package injuries

import (
	"fmt"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/ingest"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "injuries",
	Short: "The 'injuries' subcommand manages stored injuries.",
}

func init() {
	RootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deletes every stored injury.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)

		deleted, err := ingest.NewImporter(value.DB, value.SearchOptions(false)).ClearInjuries(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d injuries\n", deleted)
		return nil
	},
}
