package cmd

import (
	"fmt"

	"acl-research/internal/report"
	"acl-research/internal/transcript"
	"acl-research/lib/serviceutil"
	"acl-research/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	text    string
	format  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "transcript",
	Short: "transcript summarizes the interview transcripts of the scoliosis bracing study.",

	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&text, "text", "", "the text itself, or a path to a .docx or .txt file")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "output format: table, csv, markdown or html")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
}

func loadText() (string, error) {
	if text == "" {
		return "", fmt.Errorf("--text is required")
	}
	return transcript.LoadText(text)
}

func outputFormat() (report.Format, error) {
	return report.ParseFormat(format)
}

func Execute() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		cancel()
		serviceutil.Fatal("command failed", err)
	}
}
