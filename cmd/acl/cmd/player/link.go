package player

import (
	"fmt"
	"net/url"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/ingest"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link <name> <url>",
	Short: "Sets the fbref stats page of a player.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)

		u, err := url.Parse(args[1])
		if err != nil || u.Host == "" {
			return fmt.Errorf("'%s' is not a url", args[1])
		}

		importer := ingest.NewImporter(value.DB, value.SearchOptions(fuzzy))
		summary, err := importer.AddLinks(ctx, []ingest.NameLink{{Name: args[0], Link: args[1]}})
		if err != nil {
			return err
		}
		if summary.Imported == 0 {
			return fmt.Errorf("no player matches '%s'", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "linked %s\n", args[0])
		return nil
	},
}
