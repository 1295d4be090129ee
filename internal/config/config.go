// Package config provides configuration types and defaults for libris.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for libris.
type Config struct {
	// LibraryPath is the JSON catalog file. Relative paths resolve against
	// the working directory.
	LibraryPath string `mapstructure:"library_path"`

	// AutoRefresh reloads the TUI when the catalog file changes on disk.
	AutoRefresh         bool          `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration `mapstructure:"auto_refresh_debounce"`

	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ShowCounts    bool `mapstructure:"show_counts"`
}

// LoggingConfig configures the file and console log handlers.
type LoggingConfig struct {
	// Level is the minimum level for the log file: debug, info, warn, error.
	Level string `mapstructure:"level"`

	// File receives all log lines. Empty disables file logging.
	File string `mapstructure:"file"`

	// Console mirrors error lines to stderr.
	Console bool `mapstructure:"console"`
}

// TracingConfig configures span export for store operations.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// File receives exported spans as JSON lines.
	File string `mapstructure:"file"`
}

// Defaults returns a Config with sensible default values. The catalog lives
// under data/ in the working directory, matching where earlier versions of
// the tool kept it.
func Defaults() Config {
	return Config{
		LibraryPath:         filepath.Join("data", "books.json"),
		AutoRefresh:         true,
		AutoRefreshDebounce: 1 * time.Second,
		UI: UIConfig{
			ShowStatusBar: true,
			ShowCounts:    true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			File:    filepath.Join("logs", "libris.log"),
			Console: true,
		},
		Tracing: TracingConfig{
			File: filepath.Join("logs", "trace.jsonl"),
		},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.LibraryPath == "" {
		return fmt.Errorf("library_path is required")
	}
	if c.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative")
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Tracing.Enabled && c.Tracing.File == "" {
		return fmt.Errorf("tracing.file is required when tracing is enabled")
	}
	return nil
}

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "libris.yaml")
	}
	return filepath.Join(base, "libris", "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Libris Configuration

# Path to the JSON catalog file (default: data/books.json)
# library_path: /path/to/books.json

# Reload the interactive view when the catalog file changes on disk
auto_refresh: true
auto_refresh_debounce: 1s

# UI settings
ui:
  show_status_bar: true  # Show status bar at bottom
  show_counts: true      # Show record counts in the header

# Logging
logging:
  level: info            # debug, info, warn, error
  file: logs/libris.log  # empty string disables file logging
  console: true          # mirror errors to stderr

# Tracing (span export for store operations)
tracing:
  enabled: false
  file: logs/trace.jsonl
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
