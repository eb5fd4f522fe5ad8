package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/mlb-fantasy/internal/app"
	"github.com/riskibarqy/mlb-fantasy/internal/config"
	"github.com/riskibarqy/mlb-fantasy/internal/observability"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	file    string
	dataDir string
	dryRun  bool
}

// runState carries the process logger so main can report failures with it.
type runState struct {
	log *logging.Logger
}

func (s *runState) logger() *logging.Logger {
	if s.log == nil {
		return logging.Default()
	}
	return s.log
}

func newRootCommand() (*cobra.Command, *runState) {
	flags := &rootFlags{}
	state := &runState{}

	root := &cobra.Command{
		Use:   "mlbfantasy",
		Short: "Build and track a fantasy baseball roster from MLB stats",
		Long: `mlbfantasy keeps a nine-position fantasy baseball roster in a local JSON
file, looks players up on the MLB stats service and scores the roster with
ESPN's head-to-head points rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, flags, state)
		},
	}
	root.Flags().StringVar(&flags.file, "file", "", "roster file name inside the data directory (overrides ROSTER_FILENAME)")
	root.Flags().StringVar(&flags.dataDir, "data-dir", "", "roster data directory (overrides ROSTER_DATA_DIR)")
	root.Flags().BoolVar(&flags.dryRun, "dry-run", false, "keep roster changes in memory, nothing is written")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.ServiceName, cfg.ServiceVersion)
			return err
		},
	})

	return root, state
}

func runSession(cmd *cobra.Command, flags *rootFlags, state *runState) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, flags); err != nil {
		return err
	}

	logOutput, closeLog, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = closeLog() }()

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Output:  logOutput,
		Service: cfg.ServiceName,
		Version: cfg.ServiceVersion,
	})
	logging.SetDefault(logger)
	state.log = logger
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := app.NewSession(cfg, logger, app.Options{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		DryRun: flags.dryRun,
	})

	logger.Info("session starting", "roster_dir", cfg.RosterDataDir, "roster_file", cfg.RosterFilename, "dry_run", flags.dryRun)
	if err := session.Run(ctx); err != nil {
		return err
	}
	logger.Info("session ended")
	return nil
}

func applyFlags(cfg *config.Config, flags *rootFlags) error {
	if name := strings.TrimSpace(flags.file); name != "" {
		if err := config.ValidateFilename(name); err != nil {
			return fmt.Errorf("--file: %w", err)
		}
		cfg.RosterFilename = name
	}
	if dir := strings.TrimSpace(flags.dataDir); dir != "" {
		cfg.RosterDataDir = dir
	}
	return nil
}
