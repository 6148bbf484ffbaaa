// Package config provides configuration management for nutrigap.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Reference: path
//   - Report: page_size, title
//   - History: backend
//   - Database: host, port, user, password, database, ssl_mode
//   - Server: port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Analyze.Format, Interactive, PDFPath, Save (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use NUTRIGAP_ prefix with underscores for nesting:
//
//	NUTRIGAP_REFERENCE_PATH=/data/mpob-2024.yaml
//	NUTRIGAP_HISTORY_BACKEND=postgres
//	NUTRIGAP_DATABASE_HOST=localhost
//	NUTRIGAP_LOG_LEVEL=info
//	NUTRIGAP_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete nutrigap configuration.
type Config struct {
	// Reference points to reference standards data.
	Reference ReferenceConfig `mapstructure:"reference" yaml:"reference"`

	// Report contains settings of the printable report.
	Report ReportConfig `mapstructure:"report" yaml:"report"`

	// History selects where gap table snapshots are kept.
	History HistoryConfig `mapstructure:"history" yaml:"history"`

	// Database contains PostgreSQL connection settings used by the
	// postgres history backend.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Server contains settings of the HTTP service.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Analyze contains settings specific to the analyze command.
	Analyze AnalyzeConfig `mapstructure:"analyze" yaml:"analyze"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of uploads analyzed concurrently.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache, logs and history reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ReferenceConfig locates reference standards.
type ReferenceConfig struct {
	// Path to a reference YAML file. Empty value means the embedded
	// standards are used.
	Path string `mapstructure:"path" yaml:"path"`
}

// ReportConfig contains printable report settings.
type ReportConfig struct {
	// PageSize is "A4" or "Letter".
	PageSize string `mapstructure:"page_size" yaml:"page_size"`

	// Title is printed at the top of every report.
	Title string `mapstructure:"title" yaml:"title"`
}

// HistoryConfig selects snapshot storage.
type HistoryConfig struct {
	// Backend is "sqlite", "postgres" or "none".
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ServerConfig contains HTTP service settings.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// AnalyzeConfig contains settings of one analyze run.
type AnalyzeConfig struct {
	// Format of the printed table: "table", "csv", "tsv", "compact"
	// or "pretty".
	Format string `mapstructure:"format" yaml:"format"`

	// Interactive opens the terminal table view.
	Interactive bool `mapstructure:"interactive" yaml:"interactive"`

	// PDFPath is a file or a directory for printable reports.
	// Empty means no report is created.
	PDFPath string `mapstructure:"pdf_path" yaml:"pdf_path"`

	// Save keeps a snapshot of every table in history.
	Save bool `mapstructure:"save" yaml:"save"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Report: ReportConfig{
			PageSize: "A4",
			Title:    "Nutrient Gap Analysis",
		},
		History: HistoryConfig{
			Backend: "sqlite",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "nutrigap",
			SSLMode:  "disable",
		},
		Server: ServerConfig{
			Port: 8787,
		},
		Analyze: AnalyzeConfig{
			Format: "table",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
