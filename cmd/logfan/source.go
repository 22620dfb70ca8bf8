package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/logfan/internal/eventlog"
	"github.com/fyrsmithlabs/logfan/internal/filesink"
)

var (
	sourceStrict bool
)

func init() {
	rootCmd.AddCommand(sourceCmd)
	sourceCmd.Flags().BoolVar(&sourceStrict, "strict", false, "exit non-zero unless the source is usable")
}

// sourceCmd reconciles the event source
var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Create or verify the application's event source",
	Long: `Make sure the configured application is registered as an event source
bound to the configured event log. An existing source bound to another log
is reported and left unchanged.

Advisories are written to {log_name}Log.txt in the log folder.

Examples:
  # Register "Orders" with the Application log
  LOGFAN_APPLICATION_NAME=Orders logfan source

  # Fail when the source cannot be used
  logfan source --strict`,
	Args: cobra.NoArgs,
	RunE: runSource,
}

func runSource(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	folder, err := logFolder(cfg)
	if err != nil {
		return err
	}

	var opts []eventlog.ReconcilerOption
	if cfg.Application.MachineID != "" {
		opts = append(opts, eventlog.WithMachineIdentifier(cfg.Application.MachineID))
	}
	store := eventlog.NewPlatformStore(cfg.EventLog.RegistryDir)
	r := eventlog.NewReconciler(store, filesink.New(), opts...)
	state := r.EnsureSource(cfg.Application.Name, cfg.EventLog.LogName, cfg.EventLog.WriteTestEntry, folder)

	fmt.Fprintf(cmd.OutOrStdout(), "Event source %q -> %q: %s\n", cfg.Application.Name, cfg.EventLog.LogName, state)
	if !state.Usable() {
		fmt.Fprintf(cmd.OutOrStdout(), "See %s\n", filesink.LogPath(folder, cfg.EventLog.LogName))
		if sourceStrict {
			return fmt.Errorf("event source %q is %s", cfg.Application.Name, state)
		}
	}
	return nil
}
