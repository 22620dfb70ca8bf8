package config

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Application.Name != DefaultApplicationName {
		t.Errorf("Application.Name = %q, want %q", cfg.Application.Name, DefaultApplicationName)
	}
	if cfg.EventLog.LogName != "Application" {
		t.Errorf("EventLog.LogName = %q, want Application", cfg.EventLog.LogName)
	}
	if cfg.Logging.Level() != 2 {
		t.Errorf("Logging.Level() = %d, want 2", cfg.Logging.Level())
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Logging.SamplingTick.Duration() != time.Second {
		t.Errorf("Logging.SamplingTick = %v, want 1s", cfg.Logging.SamplingTick.Duration())
	}
	if cfg.File.Enabled || cfg.Redaction.Enabled || cfg.EventLog.WriteTestEntry {
		t.Error("optional features should default to disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoggingConfig_LevelNil(t *testing.T) {
	var c LoggingConfig
	if c.Level() != DefaultMinimumLevel {
		t.Errorf("Level() = %d, want %d", c.Level(), DefaultMinimumLevel)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty application name", func(c *Config) { c.Application.Name = "" }, "application name is required"},
		{"empty log name", func(c *Config) { c.EventLog.LogName = "" }, "event log name is required"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "must be 'json' or 'console'"},
		{"sampling without tick", func(c *Config) {
			c.Logging.Sampling = true
			c.Logging.SamplingTick = 0
		}, "sampling tick must be positive"},
		{"out of range level is allowed", func(c *Config) {
			level := 99
			c.Logging.MinimumLevel = &level
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if d.Duration() != 90*time.Second {
		t.Errorf("Duration() = %v, want 1m30s", d.Duration())
	}

	if err := d.UnmarshalText([]byte("-1s")); err == nil {
		t.Error("UnmarshalText(-1s) error = nil, want error")
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("UnmarshalText(soon) error = nil, want error")
	}

	text, _ := Duration(2 * time.Second).MarshalText()
	if string(text) != "2s" {
		t.Errorf("MarshalText() = %q, want 2s", text)
	}
	data, _ := json.Marshal(Duration(time.Minute))
	if string(data) != `"1m0s"` {
		t.Errorf("MarshalJSON() = %s, want \"1m0s\"", data)
	}
}
