package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/namesift/internal/infrastructure/config"
	"github.com/ersonp/namesift/internal/infrastructure/relationaldb/sqlite"
)

func newCatalogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Manage catalogs",
		RunE:  runCatalogsList,
	}

	cmd.AddCommand(
		newCatalogsListCmd(),
		newCatalogsCreateCmd(),
		newCatalogsDeleteCmd(),
	)

	return cmd
}

func newCatalogsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all catalogs",
		Args:  cobra.NoArgs,
		RunE:  runCatalogsList,
	}
}

func runCatalogsList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	catalogs, err := config.LoadCatalogs(cwd)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}

	printCatalogs(cmd.OutOrStdout(), catalogs)
	return nil
}

func printCatalogs(w io.Writer, catalogs *config.CatalogsConfig) {
	names := catalogs.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No catalogs configured.")
		fmt.Fprintln(w, "Use 'namesift catalogs create NAME' to create a catalog.")
		return
	}

	fmt.Fprintf(w, "%-20s %-40s %s\n", "NAME", "SOURCE", "DESCRIPTION")
	fmt.Fprintf(w, "%-20s %-40s %s\n", "----", "------", "-----------")

	for _, name := range names {
		entry := catalogs.Catalogs[name]
		fmt.Fprintf(w, "%-20s %-40s %s\n", name, entry.Source, entry.Description)
	}
}

func newCatalogsCreateCmd() *cobra.Command {
	var entry config.CatalogEntry

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogsCreate(cmd, args[0], entry)
		},
	}

	cmd.Flags().StringVarP(&entry.Description, "description", "d", "", "Catalog description")
	cmd.Flags().StringVarP(&entry.Source, "source", "s", "", "Search URL the records come from")

	return cmd
}

func runCatalogsCreate(cmd *cobra.Command, name string, entry config.CatalogEntry) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if !config.Exists(cwd) {
		if err := config.WriteDefault(cwd); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}
		fmt.Fprintf(out, "Initialized namesift in %s\n", config.ConfigDir(cwd))
	}

	if err := addCatalog(cwd, name, entry); err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.SQLitePath(cwd, name)
	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(cmd.Context()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	fmt.Fprintf(out, "Created catalog %q at %s\n", name, dbPath)

	return nil
}

func newCatalogsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a catalog and its stored runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogsDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if the catalog contains runs")

	return cmd
}

func runCatalogsDelete(cmd *cobra.Command, name string, force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	catalogs, err := config.LoadCatalogs(cwd)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}
	if !catalogs.Exists(name) {
		return fmt.Errorf("catalog %q not found", name)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	dbPath := cfg.SQLitePath(cwd, name)

	if !force {
		if count, err := countRuns(cmd, dbPath); err == nil && count > 0 {
			return fmt.Errorf("catalog %q contains %d runs, use --force to delete", name, count)
		}
	}

	out := cmd.OutOrStdout()
	if cfg.SQLite.Path == "" {
		if err := os.RemoveAll(config.CatalogDir(cwd, name)); err != nil {
			fmt.Fprintf(out, "Warning: could not remove catalog data: %v\n", err)
		}
	}

	if err := removeCatalog(cwd, name); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted catalog %q\n", name)

	return nil
}

// countRuns reports how many runs the catalog database holds. A missing
// database counts as empty.
func countRuns(cmd *cobra.Command, dbPath string) (int, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return 0, err
	}

	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	if err != nil {
		return 0, err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), 0)
	if err != nil {
		return 0, err
	}
	return len(runs), nil
}

// addCatalog registers a new catalog in the catalogs file.
func addCatalog(basePath, name string, entry config.CatalogEntry) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("invalid catalog name %q", name)
	}

	catalogs, err := config.LoadCatalogs(basePath)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}

	if catalogs.Exists(name) {
		return fmt.Errorf("catalog %q already exists", name)
	}

	catalogs.Add(name, entry)

	if err := catalogs.Save(basePath); err != nil {
		return fmt.Errorf("saving catalogs: %w", err)
	}

	return nil
}

// removeCatalog drops a catalog from the catalogs file. Unknown names are a no-op.
func removeCatalog(basePath, name string) error {
	catalogs, err := config.LoadCatalogs(basePath)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}

	catalogs.Remove(name)

	if err := catalogs.Save(basePath); err != nil {
		return fmt.Errorf("saving catalogs: %w", err)
	}

	return nil
}
