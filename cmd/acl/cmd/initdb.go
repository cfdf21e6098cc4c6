package cmd

import (
	"log/slog"

	"acl-research/cmd/acl/globals"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initDbCmd)
}

var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Creates the database tables if they don't exist yet.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// the schema is applied when the database is opened
		cfg := globals.Get(cmd.Context()).Config.Database
		if cfg.Remote() {
			slog.Info("database ready", "url", cfg.Url)
			return
		}
		slog.Info("database ready", "file", cfg.File)
	},
}
