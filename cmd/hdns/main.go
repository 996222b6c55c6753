package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/haukened/hdns"
	"github.com/haukened/hdns/internal/config"
	"github.com/haukened/hdns/internal/telemetry"
	"github.com/haukened/hdns/internal/zaplog"
)

var (
	// fs is swappable so command helpers can be tested against an in-memory
	// filesystem.
	fs afero.Fs = afero.NewOsFs()

	cfg    *config.AppConfig
	client *hdns.Client

	shutdownTelemetry = func(context.Context) error { return nil }

	rootCmd = &cobra.Command{
		Use:   "hdns",
		Short: "Manage DNS zones and records from the command line",
		Long: `hdns talks to the Hetzner DNS API to list, create, and change zones and
records, move whole zones around as zone files, and keep local snapshots
so a zone can be rolled back.

Configuration comes from HDNS_* environment variables (or a .env file);
HDNS_TOKEN is the only required one.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version and help need no configuration
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return setup(cmd.Context())
		},
	}
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	// This allows users to optionally use .env for local development
	_ = godotenv.Load()

	rootCmd.AddCommand(zoneCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the API client shared by all commands.
func setup(ctx context.Context) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	shutdownTelemetry, err = telemetry.Setup(ctx, cfg.Trace)
	if err != nil {
		return err
	}

	logger, err := zaplog.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}

	client, err = hdns.New(cfg.Token,
		hdns.WithEndpoint(cfg.Endpoint),
		hdns.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
		hdns.WithLogger(logger),
		hdns.WithApplication("hdns-cli", hdns.Version),
	)
	return err
}

func main() {
	ctx := context.Background()
	err := rootCmd.ExecuteContext(ctx)
	if sderr := shutdownTelemetry(ctx); sderr != nil {
		fmt.Fprintln(os.Stderr, "telemetry shutdown:", sderr)
	}
	if err != nil {
		os.Exit(1)
	}
}
