package filesink

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultFolderName is the directory created under the per-user local data
// directory when no folder is configured.
const DefaultFolderName = "CustomLoggingProvider"

// DefaultFolder returns the default log folder and creates it.
//
//   - Windows: %LOCALAPPDATA%\CustomLoggingProvider
//   - Others:  $XDG_DATA_HOME/CustomLoggingProvider, falling back to
//     ~/.local/share/CustomLoggingProvider
func DefaultFolder() (string, error) {
	base, err := localDataDir()
	if err != nil {
		return "", err
	}
	folder := filepath.Join(base, DefaultFolderName)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log folder %s: %w", folder, err)
	}
	return folder, nil
}

func localDataDir() (string, error) {
	if runtime.GOOS == "windows" {
		// UserCacheDir is %LocalAppData% on Windows.
		return os.UserCacheDir()
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}
