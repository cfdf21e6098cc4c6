package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"acl-research/cmd/acl/cmd/fbrefcmd"
	"acl-research/cmd/acl/cmd/importcmd"
	"acl-research/cmd/acl/cmd/injuries"
	"acl-research/cmd/acl/cmd/player"
	"acl-research/cmd/acl/cmd/runs"
	"acl-research/cmd/acl/globals"
	"acl-research/internal/db"
	"acl-research/internal/report"
	"acl-research/lib/serviceutil"
	"acl-research/lib/sqliteutil"
	"acl-research/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbFile     string
	format     string
	verbose    bool
)

// opened by PersistentPreRunE and released by closeResources, which also
// runs when a command fails
var (
	tel      telemetry.Telemetry
	database *sql.DB
)

var rootCmd = &cobra.Command{
	Use:   "acl",
	Short: "acl compares the performance of NWSL players before and after an ACL injury against matched controls.",

	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		cfg, err := globals.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if dbFile != "" {
			cfg.Database = sqliteutil.Config{File: dbFile}
		}
		outputFormat, err := report.ParseFormat(format)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		tel, err = telemetry.SetupFromEnv(ctx, "acl")
		if err != nil {
			slog.WarnContext(ctx, "failed to set up telemetry", "err", err)
		}

		database, err = cfg.Database.OpenDB(db.Schema)
		if err != nil {
			return err
		}

		cmd.SetContext(globals.Set(ctx, &globals.Value{
			Config: cfg,
			DB:     database,
			Qry:    db.New(database),
			Format: outputFormat,
		}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config.json5, by default it is searched for upwards from the working directory")
	rootCmd.PersistentFlags().StringVar(&dbFile, "db", "", "sqlite database file, overrides the configured database")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "output format: table, csv, markdown or html")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	rootCmd.AddCommand(importcmd.RootCmd)
	rootCmd.AddCommand(injuries.RootCmd)
	rootCmd.AddCommand(player.RootCmd)
	rootCmd.AddCommand(fbrefcmd.RootCmd)
	rootCmd.AddCommand(runs.RootCmd)
}

func closeResources() {
	if database != nil {
		err := database.Close()
		if err != nil {
			slog.Warn("failed to close database", "err", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := tel.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to shut down telemetry", "err", err)
	}
}

func run(ctx context.Context, args []string) error {
	if args != nil {
		rootCmd.SetArgs(args)
	}
	defer closeResources()
	return rootCmd.ExecuteContext(ctx)
}

func Execute() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	err := run(ctx, nil)
	if err != nil {
		cancel()
		serviceutil.Fatal("command failed", err)
	}
}
