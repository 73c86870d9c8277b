package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoCatalogs is returned by Get when the registry is empty.
var ErrNoCatalogs = errors.New("no catalogs configured (run 'namesift catalogs create <name>')")

// CatalogsConfig holds the named catalogs registry (read/write).
type CatalogsConfig struct {
	Catalogs map[string]CatalogEntry `yaml:"catalogs,omitempty"`
}

// CatalogEntry describes one harvested catalog.
type CatalogEntry struct {
	Description string `yaml:"description,omitempty"`
	Source      string `yaml:"source,omitempty"` // Search URL the records were acquired from
}

// LoadCatalogs loads the catalogs registry from the .namesift directory.
func LoadCatalogs(basePath string) (*CatalogsConfig, error) {
	data, err := os.ReadFile(CatalogsFilePath(basePath))
	if errors.Is(err, os.ErrNotExist) {
		// Return empty config if file doesn't exist
		return &CatalogsConfig{
			Catalogs: make(map[string]CatalogEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalogs file: %w", err)
	}

	var cfg CatalogsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing catalogs file: %w", err)
	}

	if cfg.Catalogs == nil {
		cfg.Catalogs = make(map[string]CatalogEntry)
	}

	return &cfg, nil
}

// Save writes the registry to the catalogs file.
func (c *CatalogsConfig) Save(basePath string) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling catalogs config: %w", err)
	}

	if err := os.WriteFile(CatalogsFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing catalogs file: %w", err)
	}

	return nil
}

// Add adds a catalog to the registry.
func (c *CatalogsConfig) Add(name string, entry CatalogEntry) {
	if c.Catalogs == nil {
		c.Catalogs = make(map[string]CatalogEntry)
	}
	c.Catalogs[name] = entry
}

// Remove removes a catalog from the registry.
func (c *CatalogsConfig) Remove(name string) {
	if c.Catalogs != nil {
		delete(c.Catalogs, name)
	}
}

// Names returns the registered catalog names in sorted order.
func (c *CatalogsConfig) Names() []string {
	names := make([]string, 0, len(c.Catalogs))
	for name := range c.Catalogs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the entry for a specific catalog.
func (c *CatalogsConfig) Get(name string) (*CatalogEntry, error) {
	if len(c.Catalogs) == 0 {
		return nil, ErrNoCatalogs
	}

	entry, ok := c.Catalogs[name]
	if !ok {
		names := c.Names()
		if len(names) > 5 {
			names = append(names[:5], "...")
		}
		return nil, fmt.Errorf("catalog %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	return &entry, nil
}

// Exists checks if a catalog exists in the registry.
func (c *CatalogsConfig) Exists(name string) bool {
	if c.Catalogs == nil {
		return false
	}
	_, ok := c.Catalogs[name]
	return ok
}
