package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logfan/internal/filesink"
	"github.com/fyrsmithlabs/logfan/internal/follow"
	"github.com/fyrsmithlabs/logfan/internal/logging"
)

var (
	tailFromStart bool
)

func init() {
	rootCmd.AddCommand(tailCmd)
	tailCmd.Flags().BoolVar(&tailFromStart, "from-start", false, "print records already in the file first")
}

// tailCmd follows the current log file
var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow the application's log file",
	Long: `Print records appended to the application's current log file, following
it across daily rotations. Stops on interrupt.

Examples:
  # Follow new records
  LOGFAN_APPLICATION_NAME=Orders logfan tail

  # Print the whole file, then follow
  logfan tail --from-start`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	folder, err := logFolder(cfg)
	if err != nil {
		return err
	}

	// Watcher diagnostics go to stderr so stdout carries only records.
	factory, err := logging.NewFactory(loggingConfig(cfg), logging.WithConsoleWriter(zapcore.Lock(os.Stderr)))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger := factory.Logger(logging.LoggerOptions{Name: cfg.Application.Name, Level: zapcore.WarnLevel})
	defer func() { _ = logger.Sync() }()

	opts := []follow.Option{follow.WithLogger(logger.Underlying())}
	if tailFromStart {
		opts = append(opts, follow.FromStart())
	}
	f, err := follow.New(filesink.LogPath(folder, cfg.Application.Name), opts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	return f.Run(ctx, func(record string) {
		fmt.Fprintln(out, record)
		fmt.Fprintln(out, filesink.Separator)
	})
}
