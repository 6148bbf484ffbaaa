package config

import (
	"path/filepath"
)

var (
	// MinVersionReference determines the oldest reference standards
	// version still compatible with nutrigap.
	MinVersionReference = "v1.0.0"
	// AppName is used in generating file system paths.
	AppName = "nutrigap"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/nutrigap by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/nutrigap by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DataDir returns the directory path for persistent application data.
// Returns ~/.local/share/nutrigap by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/nutrigap/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/nutrigap/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// HistoryDBPath returns the path of the sqlite history database.
// Returns ~/.local/share/nutrigap/history.sqlite by default.
func HistoryDBPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "history.sqlite")
}
