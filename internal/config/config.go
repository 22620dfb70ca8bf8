// Package config provides configuration loading for logfan.
//
// Configuration is loaded from a YAML file and environment variables with
// defaults. Sections mirror the dispatcher options: the application being
// logged, its event-log binding, the structured logger, the file sink and
// redaction.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultApplicationName names the application when none is configured.
	DefaultApplicationName = "logfan"

	// DefaultLogName is the event log sources bind to by default.
	DefaultLogName = "Application"

	// DefaultMinimumLevel is the Information ordinal.
	DefaultMinimumLevel = 2
)

// Config holds the complete logfan configuration.
type Config struct {
	Application ApplicationConfig `koanf:"application"`
	EventLog    EventLogConfig    `koanf:"eventlog"`
	Logging     LoggingConfig     `koanf:"logging"`
	File        FileConfig        `koanf:"file"`
	Redaction   RedactionConfig   `koanf:"redaction"`
}

// ApplicationConfig identifies the application whose entries are logged.
type ApplicationConfig struct {
	Name      string `koanf:"name"`
	Caller    string `koanf:"caller"`     // Prefix of structured-logger messages (default: UnknownCaller)
	MachineID string `koanf:"machine_id"` // Machine column of file records (default: host name)
}

// EventLogConfig holds operating-system event log settings.
type EventLogConfig struct {
	LogName        string `koanf:"log_name"`
	WriteTestEntry bool   `koanf:"write_test_entry"`
	RegistryDir    string `koanf:"registry_dir"` // Source registry for the journal back-end
}

// LoggingConfig holds structured logger settings.
type LoggingConfig struct {
	// MinimumLevel is an ordinal: 0=Trace 1=Debug 2=Information
	// 3=Warning 4=Error 5=Critical. Nil selects Information.
	MinimumLevel *int     `koanf:"minimum_level"`
	Format       string   `koanf:"format"`
	Sampling     bool     `koanf:"sampling"`
	SamplingTick Duration `koanf:"sampling_tick"`
}

// FileConfig holds file sink settings.
type FileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	FolderPath string `koanf:"folder_path"` // Empty selects the per-user default folder
}

// RedactionConfig controls message redaction.
type RedactionConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Level returns the configured minimum level ordinal.
func (c LoggingConfig) Level() int {
	if c.MinimumLevel == nil {
		return DefaultMinimumLevel
	}
	return *c.MinimumLevel
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Application name is empty
//   - Event log name is empty
//   - Logging format is not json or console
//   - Sampling is enabled with a non-positive tick
//
// Out-of-range minimum levels are not an error; they select Trace.
func (c *Config) Validate() error {
	if c.Application.Name == "" {
		return errors.New("application name is required")
	}
	if c.EventLog.LogName == "" {
		return errors.New("event log name is required")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	if c.Logging.Sampling && c.Logging.SamplingTick.Duration() <= 0 {
		return errors.New("sampling tick must be positive when sampling is enabled")
	}
	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Application.Name == "" {
		cfg.Application.Name = DefaultApplicationName
	}
	if cfg.EventLog.LogName == "" {
		cfg.EventLog.LogName = DefaultLogName
	}
	if cfg.Logging.MinimumLevel == nil {
		level := DefaultMinimumLevel
		cfg.Logging.MinimumLevel = &level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.SamplingTick == 0 {
		cfg.Logging.SamplingTick = Duration(time.Second)
	}
}
