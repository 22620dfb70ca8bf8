package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// setupTestHome points HOME at a temporary directory and returns the
// allowed config directory inside it.
func setupTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "logfan")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	return configDir
}

func writeConfig(t *testing.T, dir, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	// WriteFile is subject to umask
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("Failed to chmod test config: %v", err)
	}
	return path
}

func TestLoadWithFile_ValidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `application:
  name: Orders
  caller: Orders.Service
eventlog:
  log_name: OrdersLog
  write_test_entry: true
logging:
  minimum_level: 0
  format: console
file:
  enabled: true
  folder_path: /var/log/orders
redaction:
  enabled: true
`, 0600)

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil", err)
	}

	if cfg.Application.Name != "Orders" {
		t.Errorf("Application.Name = %q, want %q", cfg.Application.Name, "Orders")
	}
	if cfg.Application.Caller != "Orders.Service" {
		t.Errorf("Application.Caller = %q, want %q", cfg.Application.Caller, "Orders.Service")
	}
	if cfg.EventLog.LogName != "OrdersLog" {
		t.Errorf("EventLog.LogName = %q, want %q", cfg.EventLog.LogName, "OrdersLog")
	}
	if !cfg.EventLog.WriteTestEntry {
		t.Error("EventLog.WriteTestEntry = false, want true")
	}
	if cfg.Logging.Level() != 0 {
		t.Errorf("Logging.Level() = %d, want 0", cfg.Logging.Level())
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if !cfg.File.Enabled || cfg.File.FolderPath != "/var/log/orders" {
		t.Errorf("File = %+v, want enabled with /var/log/orders", cfg.File)
	}
	if !cfg.Redaction.Enabled {
		t.Error("Redaction.Enabled = false, want true")
	}
}

func TestLoadWithFile_EnvironmentOverride(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `application:
  name: Orders
file:
  folder_path: /from/yaml
logging:
  sampling_tick: 2s
`, 0600)

	t.Setenv("LOGFAN_FILE_FOLDER_PATH", "/from/env")
	t.Setenv("LOGFAN_FILE_ENABLED", "true")
	t.Setenv("LOGFAN_LOGGING_MINIMUM_LEVEL", "4")
	t.Setenv("LOGFAN_EVENTLOG_LOG_NAME", "Security")

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v", err)
	}

	if cfg.File.FolderPath != "/from/env" {
		t.Errorf("File.FolderPath = %q, want /from/env (env should override YAML)", cfg.File.FolderPath)
	}
	if !cfg.File.Enabled {
		t.Error("File.Enabled = false, want true")
	}
	if cfg.Logging.Level() != 4 {
		t.Errorf("Logging.Level() = %d, want 4", cfg.Logging.Level())
	}
	if cfg.EventLog.LogName != "Security" {
		t.Errorf("EventLog.LogName = %q, want Security", cfg.EventLog.LogName)
	}
	if cfg.Application.Name != "Orders" {
		t.Errorf("Application.Name = %q, want Orders (from YAML)", cfg.Application.Name)
	}
	if cfg.Logging.SamplingTick.Duration() != 2*time.Second {
		t.Errorf("Logging.SamplingTick = %v, want 2s", cfg.Logging.SamplingTick.Duration())
	}
}

func TestLoadWithFile_MissingFileUsesDefaults(t *testing.T) {
	setupTestHome(t)

	cfg, err := LoadWithFile("")
	if err != nil {
		t.Fatalf("LoadWithFile(\"\") error = %v", err)
	}

	want := Default()
	if cfg.Application.Name != want.Application.Name {
		t.Errorf("Application.Name = %q, want %q", cfg.Application.Name, want.Application.Name)
	}
	if cfg.EventLog.LogName != DefaultLogName {
		t.Errorf("EventLog.LogName = %q, want %q", cfg.EventLog.LogName, DefaultLogName)
	}
	if cfg.Logging.Level() != DefaultMinimumLevel {
		t.Errorf("Logging.Level() = %d, want %d", cfg.Logging.Level(), DefaultMinimumLevel)
	}
	if cfg.File.Enabled {
		t.Error("File.Enabled = true, want false")
	}
}

func TestLoadWithFile_InvalidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "application: [unclosed\n", 0600)

	if _, err := LoadWithFile(path); err == nil {
		t.Fatal("LoadWithFile() error = nil, want parse error")
	}
}

func TestLoadWithFile_Validation(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "logging:\n  format: xml\n", 0600)

	_, err := LoadWithFile(path)
	if err == nil {
		t.Fatal("LoadWithFile() error = nil, want validation error")
	}
	if !strings.Contains(err.Error(), "config validation failed") {
		t.Errorf("error = %v, want config validation failure", err)
	}
}

func TestLoadWithFile_PathOutsideAllowedDirs(t *testing.T) {
	setupTestHome(t)
	other := t.TempDir()
	path := writeConfig(t, other, "application:\n  name: Orders\n", 0600)

	_, err := LoadWithFile(path)
	if err == nil {
		t.Fatal("LoadWithFile() error = nil, want path validation error")
	}
	if !strings.Contains(err.Error(), "config path validation failed") {
		t.Errorf("error = %v, want path validation failure", err)
	}
}

func TestLoadWithFile_InsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows has a different permission model")
	}
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "application:\n  name: Orders\n", 0644)

	_, err := LoadWithFile(path)
	if err == nil {
		t.Fatal("LoadWithFile() error = nil, want permission error")
	}
	if !strings.Contains(err.Error(), "insecure config file permissions") {
		t.Errorf("error = %v, want insecure permissions", err)
	}
}

func TestLoadWithFile_ReadOnlyPermissions(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "application:\n  name: Orders\n", 0400)

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v", err)
	}
	if cfg.Application.Name != "Orders" {
		t.Errorf("Application.Name = %q, want Orders", cfg.Application.Name)
	}
}

func TestLoadWithFile_FileTooLarge(t *testing.T) {
	dir := setupTestHome(t)
	var buf bytes.Buffer
	buf.WriteString("application:\n  name: Orders\n# ")
	buf.Write(bytes.Repeat([]byte("x"), maxConfigFileSize))
	path := writeConfig(t, dir, buf.String(), 0600)

	_, err := LoadWithFile(path)
	if err == nil {
		t.Fatal("LoadWithFile() error = nil, want size error")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("error = %v, want too large", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"LOGFAN_FILE_FOLDER_PATH":          "file.folder_path",
		"LOGFAN_EVENTLOG_WRITE_TEST_ENTRY": "eventlog.write_test_entry",
		"LOGFAN_APPLICATION_NAME":          "application.name",
		"LOGFAN_DEBUG":                     "debug",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateConfigPath(t *testing.T) {
	dir := setupTestHome(t)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"user config dir", filepath.Join(dir, "config.yaml"), false},
		{"nested in user dir", filepath.Join(dir, "profiles", "orders.yaml"), false},
		{"system dir", "/etc/logfan/config.yaml", false},
		{"sibling with shared prefix", "/etc/logfan-evil/config.yaml", true},
		{"traversal out of user dir", filepath.Join(dir, "..", "..", "config.yaml"), true},
		{"tmp", "/tmp/config.yaml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfigPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
