// Package main implements the logfan CLI for writing, reconciling and
// following application logs.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/logfan/internal/config"
	"github.com/fyrsmithlabs/logfan/internal/filesink"
	"github.com/fyrsmithlabs/logfan/internal/logging"
	"github.com/fyrsmithlabs/logfan/pkg/dispatcher"
)

var (
	// configPath overrides the default config file location
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logfan",
	Short: "Write application logs to the console, event log and files",
	Long: `logfan writes application log entries to the structured console logger,
the operating-system event log and a daily-rotated text file.

Configuration is read from ~/.config/logfan/config.yaml (or --config)
and LOGFAN_* environment variables, e.g. LOGFAN_FILE_FOLDER_PATH.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/logfan/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	return config.LoadWithFile(configPath)
}

// dispatcherOptions maps the loaded configuration onto dispatcher options.
func dispatcherOptions(cfg *config.Config) dispatcher.Options {
	return dispatcher.Options{
		ApplicationName:     cfg.Application.Name,
		LogName:             cfg.EventLog.LogName,
		MinimumLevel:        dispatcher.LevelFromOrdinal(cfg.Logging.Level()),
		FileLogging:         cfg.File.Enabled,
		FileFolderPath:      cfg.File.FolderPath,
		RedactSensitiveData: cfg.Redaction.Enabled,
		CallerIdentity:      cfg.Application.Caller,
		WriteTestEntry:      cfg.EventLog.WriteTestEntry,
		EventLogRegistryDir: cfg.EventLog.RegistryDir,
		MachineIdentifier:   cfg.Application.MachineID,
		Logging:             loggingConfig(cfg),
	}
}

// loggingConfig maps the logging section onto the structured logger config.
func loggingConfig(cfg *config.Config) *logging.Config {
	lc := logging.NewDefaultConfig()
	lc.Level = logging.LevelFromOrdinal(cfg.Logging.Level())
	lc.Format = cfg.Logging.Format
	lc.Sampling.Enabled = cfg.Logging.Sampling
	lc.Sampling.Tick = cfg.Logging.SamplingTick
	lc.Fields["service"] = cfg.Application.Name
	return lc
}

// logFolder returns the configured log folder or the per-user default.
func logFolder(cfg *config.Config) (string, error) {
	if cfg.File.FolderPath != "" {
		return cfg.File.FolderPath, nil
	}
	return filesink.DefaultFolder()
}
