// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for namesift configuration.
	DefaultConfigDir = ".namesift"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultCatalogsFile is the default catalogs registry file name.
	DefaultCatalogsFile = "catalogs.yaml"
	// DefaultDatabaseFile is the per-catalog SQLite file name.
	DefaultDatabaseFile = "namesift.db"
)

// Environment variables that override file settings.
const (
	EnvLogLevel = "NAMESIFT_LOG_LEVEL"
	EnvHTTPAddr = "NAMESIFT_HTTP_ADDR"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Valid enumerations checked by Validate.
var (
	OutputFormats = []string{"outline", "pretty", "json", "markdown"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
)

// Config holds static configuration (read-only after load).
type Config struct {
	Grouping GroupingConfig `yaml:"grouping"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
	HTTP     HTTPConfig     `yaml:"http,omitempty"`
}

// GroupingConfig holds defaults for hierarchy construction.
type GroupingConfig struct {
	ConsiderDates bool   `yaml:"consider_dates"`
	RootLabel     string `yaml:"root_label,omitempty"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite record store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// For per-catalog databases, this is computed dynamically using SQLitePathForCatalog.
	Path string `yaml:"path,omitempty"`
}

// LogConfig holds logging configuration. File enables a rotating JSON log.
type LogConfig struct {
	Level      string `yaml:"level,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// HTTPConfig holds configuration for the serve command.
type HTTPConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Grouping: GroupingConfig{
			ConsiderDates: true,
			RootLabel:     "Names",
		},
		Output: OutputConfig{
			Format: "outline",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		HTTP: HTTPConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Load loads configuration from the .namesift directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if addr := os.Getenv(EnvHTTPAddr); addr != "" {
		c.HTTP.Addr = addr
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("output.format %q (valid: %s)", c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("log.level %q (valid: %s)", c.Log.Level, strings.Join(LogLevels, ", "))
	}
	return nil
}

// ConfigDir returns the path to the .namesift config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// CatalogsFilePath returns the path to the catalogs registry.
func CatalogsFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultCatalogsFile)
}

// Exists checks if a namesift config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeCatalogName converts a catalog name to a safe directory name.
func SanitizeCatalogName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// CatalogDir returns the directory path for a given catalog.
func CatalogDir(basePath, catalogName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "catalogs", SanitizeCatalogName(catalogName))
}

// SQLitePathForCatalog returns the SQLite database path for a given catalog.
func SQLitePathForCatalog(basePath, catalogName string) string {
	return filepath.Join(CatalogDir(basePath, catalogName), DefaultDatabaseFile)
}

// SQLitePath resolves the database path: an explicit sqlite.path wins,
// relative paths are taken from basePath.
func (c *Config) SQLitePath(basePath, catalogName string) string {
	if c.SQLite.Path == "" {
		return SQLitePathForCatalog(basePath, catalogName)
	}
	if filepath.IsAbs(c.SQLite.Path) {
		return c.SQLite.Path
	}
	return filepath.Join(basePath, c.SQLite.Path)
}
