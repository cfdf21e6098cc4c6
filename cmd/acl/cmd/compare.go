package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"acl-research/cmd/acl/globals"
	"acl-research/internal/diffindiff"
	"acl-research/internal/report"
	"acl-research/internal/study"
	"acl-research/lib/mailer"

	"github.com/spf13/cobra"
)

func init() {
	compareCmd.Flags().String("mode", string(diffindiff.ModeDiffInDiff), "did, injured or control")
	compareCmd.Flags().Bool("raw", false, "report raw differences instead of normalized ones")
	compareCmd.Flags().Bool("offline", false, "only use fbref stats that are already stored")
	compareCmd.Flags().Bool("use-browser", false, "fetch missing stats with a headless browser")
	compareCmd.Flags().Bool("save", false, "store the report in the database")
	compareCmd.Flags().StringSlice("mail-to", nil, "email the report to these addresses")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Matches every injured player with a control and compares their stats before and after the injury.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)

		modeFlag, _ := cmd.Flags().GetString("mode")
		raw, _ := cmd.Flags().GetBool("raw")
		offline, _ := cmd.Flags().GetBool("offline")
		useBrowser, _ := cmd.Flags().GetBool("use-browser")
		save, _ := cmd.Flags().GetBool("save")
		mailTo, _ := cmd.Flags().GetStringSlice("mail-to")

		mode, err := diffindiff.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		if len(mailTo) > 0 && !value.Config.Smtp.Configured() {
			return fmt.Errorf("--mail-to needs the smtp section of the config")
		}

		store, release, err := value.Store(ctx, offline, useBrowser)
		if err != nil {
			return err
		}
		defer release()

		s := study.New(value.DB, store, value.Matcher())
		r, err := s.Run(ctx, study.Options{Mode: mode, Offline: offline})
		if err != nil {
			return err
		}

		report.Results(os.Stdout, r.Results, report.ResultOptions{
			Mode:       r.Mode,
			Normalized: !raw,
			Format:     value.Format,
		})
		fmt.Println()
		report.Pairs(os.Stdout, r.Pairs, value.Format)
		if len(r.Skips) > 0 {
			fmt.Println()
			report.Skips(os.Stdout, r.Skips, value.Format)
		}

		if save {
			id, err := s.Save(ctx, r, !raw)
			if err != nil {
				return fmt.Errorf("save run: %w", err)
			}
			slog.InfoContext(ctx, "saved run", "id", id)
		}
		if len(mailTo) > 0 {
			msg := report.Message(mailTo, r, !raw, time.Now())
			err := mailer.Send(ctx, value.Config.Smtp, msg)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "mailed report", "to", mailTo)
		}
		return nil
	},
}
