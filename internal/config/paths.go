package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// LogDirectory returns the directory for filedeck log files.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\filedeck\logs
//   - Unix: ~/.config/filedeck/logs
func LogDirectory() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "filedeck-logs")
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "filedeck", "logs")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "filedeck-logs")
		}
		return filepath.Join(homeDir, ".config", "filedeck", "logs")
	}
	return filepath.Join(configDir, "filedeck", "logs")
}

// DefaultLogFile is the log file used by the TUI when none is configured.
func DefaultLogFile() string {
	return filepath.Join(LogDirectory(), "filedeck.log")
}
