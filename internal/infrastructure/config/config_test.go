package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCatalogName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple lowercase", input: "tolkien", expected: "tolkien"},
		{name: "uppercase converted", input: "Tolkien", expected: "tolkien"},
		{name: "spaces to underscores", input: "tolkien search", expected: "tolkien_search"},
		{name: "hyphens to underscores", input: "tolkien-search", expected: "tolkien_search"},
		{name: "special characters removed", input: "tolkien@search!", expected: "tolkiensearch"},
		{name: "consecutive underscores collapsed", input: "tolkien--search", expected: "tolkien_search"},
		{name: "leading trailing underscores trimmed", input: "-tolkien-", expected: "tolkien"},
		{name: "empty string returns default", input: "", expected: "default"},
		{name: "only special chars returns default", input: "!!!", expected: "default"},
		{name: "complex mixed input", input: "Archive Search (2024)", expected: "archive_search_2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeCatalogName(tt.input))
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Grouping.ConsiderDates)
	assert.Equal(t, "Names", cfg.Grouping.RootLabel)
	assert.Equal(t, "outline", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/home/user/project/.namesift", ConfigDir("/home/user/project"))
	assert.Equal(t, "/home/user/project/.namesift/config.yaml", ConfigFilePath("/home/user/project"))
	assert.Equal(t, "/home/user/project/.namesift/catalogs.yaml", CatalogsFilePath("/home/user/project"))
	assert.Equal(t, "/p/.namesift/catalogs/tolkien_search/namesift.db", SQLitePathForCatalog("/p", "Tolkien Search"))
}

func TestConfig_SQLitePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/p/.namesift/catalogs/main/namesift.db", cfg.SQLitePath("/p", "main"))

	cfg.SQLite.Path = "data/names.db"
	assert.Equal(t, "/p/data/names.db", cfg.SQLitePath("/p", "main"))

	cfg.SQLite.Path = "/var/lib/names.db"
	assert.Equal(t, "/var/lib/names.db", cfg.SQLitePath("/p", "main"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	content := "grouping:\n  consider_dates: false\noutput:\n  format: pretty\n"
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Grouping.ConsiderDates)
	assert.Equal(t, "Names", cfg.Grouping.RootLabel)
	assert.Equal(t, "pretty", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_DefaultYAMLRoundTrips(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvHTTPAddr, ":9090")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "bad yaml", content: "grouping: [", errMsg: "parsing config file"},
		{name: "bad format", content: "output:\n  format: html\n", errMsg: "output.format"},
		{name: "bad level", content: "log:\n  level: loud\n", errMsg: "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
			require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(tt.content), 0644))

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Grouping.RootLabel = "Search"

	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Search", loaded.Grouping.RootLabel)
}

func TestCatalogs(t *testing.T) {
	dir := t.TempDir()

	catalogs, err := LoadCatalogs(dir)
	require.NoError(t, err)
	assert.Empty(t, catalogs.Catalogs)

	_, err = catalogs.Get("tolkien")
	assert.ErrorIs(t, err, ErrNoCatalogs)

	catalogs.Add("tolkien", CatalogEntry{Description: "Tolkien search", Source: "https://example.org/search?q=tolkien"})
	catalogs.Add("lewis", CatalogEntry{})
	require.NoError(t, catalogs.Save(dir))

	_, err = os.Stat(filepath.Join(dir, DefaultConfigDir, DefaultCatalogsFile))
	require.NoError(t, err)

	loaded, err := LoadCatalogs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"lewis", "tolkien"}, loaded.Names())
	assert.True(t, loaded.Exists("tolkien"))

	entry, err := loaded.Get("tolkien")
	require.NoError(t, err)
	assert.Equal(t, "Tolkien search", entry.Description)

	_, err = loaded.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: lewis, tolkien")

	loaded.Remove("lewis")
	assert.False(t, loaded.Exists("lewis"))
}
