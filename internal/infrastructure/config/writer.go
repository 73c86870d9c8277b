package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# namesift configuration

grouping:
  consider_dates: true
  root_label: Names

output:
  format: outline # outline, pretty, json, markdown

# sqlite:
#   path: names.db (defaults to .namesift/catalogs/<catalog>/namesift.db)

log:
  level: info # debug, info, warn, error (or set NAMESIFT_LOG_LEVEL)
  # file: .namesift/namesift.log
  max_size_mb: 10
  max_backups: 3
  max_age_days: 28

http:
  addr: 127.0.0.1:8080 # or set NAMESIFT_HTTP_ADDR
`

// WriteDefault creates the .namesift directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
