package importcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/ingest"

	"github.com/spf13/cobra"
)

var fuzzy bool

var RootCmd = &cobra.Command{
	Use:   "import",
	Short: "The 'import' subcommand loads spreadsheet exports into the database.",
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&fuzzy, "fuzzy", false, "fall back to fuzzy name matching")
	RootCmd.AddCommand(seasonsCmd)
	RootCmd.AddCommand(injuriesCmd)
	RootCmd.AddCommand(linksCmd)
}

type importFunc = func(i ingest.Importer, ctx context.Context, r io.Reader) (ingest.Summary, error)

func runImport(cmd *cobra.Command, path string, fn importFunc) error {
	ctx := cmd.Context()
	value := globals.Get(ctx)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	importer := ingest.NewImporter(value.DB, value.SearchOptions(fuzzy))
	summary, err := fn(importer, ctx, f)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	slog.InfoContext(ctx, "import finished",
		"rows", summary.Rows,
		"imported", summary.Imported,
		"skipped", summary.Skipped,
	)
	for _, name := range summary.Unmatched {
		fmt.Println("unmatched:", name)
	}
	return nil
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons <csv>",
	Short: "Imports a season stats export, one row per player season.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], ingest.Importer.ImportSeasons)
	},
}

var injuriesCmd = &cobra.Command{
	Use:   "injuries <csv>",
	Short: "Imports the injury spreadsheet, rows of unknown players are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], ingest.Importer.ImportInjuries)
	},
}

var linksCmd = &cobra.Command{
	Use:   "links <csv>",
	Short: "Sets fbref links from a csv with 'Player' and 'Stats Link' columns.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], ingest.Importer.ImportLinks)
	},
}
