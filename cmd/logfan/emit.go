package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/logfan/pkg/dispatcher"
)

const defaultEmitMessage = "Test log message"

var (
	emitLevel string
)

func init() {
	rootCmd.AddCommand(emitCmd)
	emitCmd.Flags().StringVarP(&emitLevel, "level", "l", "", "write a single entry at this level instead of one per level")
}

// emitCmd writes entries through a dispatcher
var emitCmd = &cobra.Command{
	Use:   "emit [message]",
	Short: "Write log entries through every configured sink",
	Long: `Write a message through the dispatcher: structured console logger,
operating-system event log and, when enabled, the log file.

Without --level one entry is written per level, Trace through Critical.

Examples:
  # One entry per level
  logfan emit

  # A single warning
  logfan emit --level warning "disk at 91%"

  # Write to a log file in /var/log/orders
  LOGFAN_FILE_ENABLED=true LOGFAN_FILE_FOLDER_PATH=/var/log/orders logfan emit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmit,
}

func runEmit(cmd *cobra.Command, args []string) error {
	levels := []dispatcher.Level{
		dispatcher.Trace,
		dispatcher.Debug,
		dispatcher.Information,
		dispatcher.Warning,
		dispatcher.Error,
		dispatcher.Critical,
	}
	if emitLevel != "" {
		level, err := dispatcher.ParseLevel(emitLevel)
		if err != nil {
			return fmt.Errorf("invalid --level: %w", err)
		}
		levels = []dispatcher.Level{level}
	}

	message := defaultEmitMessage
	if len(args) == 1 {
		message = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	d, err := dispatcher.New(dispatcherOptions(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = d.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for _, level := range levels {
		d.Log(ctx, level, message)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d entries for %s (event source: %s)\n", len(levels), cfg.Application.Name, d.EventSourceState())
	if cfg.File.Enabled {
		fmt.Fprintf(out, "Log file: %s\n", d.LogFilePath())
	}
	return nil
}
