package fbrefcmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "fbref",
	Short: "The 'fbref' subcommand scrapes player stats pages.",
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
