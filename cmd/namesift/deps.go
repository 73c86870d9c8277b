package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ersonp/namesift/internal/application/handlers"
	"github.com/ersonp/namesift/internal/domain/services"
	"github.com/ersonp/namesift/internal/infrastructure/config"
	"github.com/ersonp/namesift/internal/infrastructure/logging"
	"github.com/ersonp/namesift/internal/infrastructure/nameparser"
	"github.com/ersonp/namesift/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	BasePath      string
	Config        *config.Config
	Catalogs      *config.CatalogsConfig
	Log           *slog.Logger
	GroupHandler  *handlers.GroupHandler
	ImportHandler *handlers.ImportHandler
	ReviewHandler *handlers.ReviewHandler
	RunsHandler   *handlers.RunsHandler
}

// withDeps builds dependencies backed by the selected catalog's store and
// calls fn. A catalog is required.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	if globalCatalog == "" {
		return errors.New("catalog is required (use --catalog flag)")
	}
	return buildDeps(ctx, true, fn)
}

// withOptionalStore is like withDeps but opens a store only when a catalog
// was selected. Commands reading input files work without one.
func withOptionalStore(ctx context.Context, fn func(*Deps) error) error {
	return buildDeps(ctx, globalCatalog != "", fn)
}

func buildDeps(ctx context.Context, withStore bool, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, logCloser, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logCloser.Close()

	catalogs, err := config.LoadCatalogs(cwd)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}

	normalizer := services.NewNormalizeService(nameparser.New(), log)
	grouping := services.NewGroupingService(log)

	deps := &Deps{
		BasePath: cwd,
		Config:   cfg,
		Catalogs: catalogs,
		Log:      log,
	}

	if !withStore {
		deps.GroupHandler = handlers.NewGroupHandler(normalizer, grouping, nil)
		return fn(deps)
	}

	if _, err := catalogs.Get(globalCatalog); err != nil {
		return err
	}

	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(cwd, globalCatalog)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	catalog := services.NewCatalogService(store, normalizer, log.With("catalog", globalCatalog))

	deps.GroupHandler = handlers.NewGroupHandler(normalizer, grouping, catalog)
	deps.ImportHandler = handlers.NewImportHandler(catalog)
	deps.ReviewHandler = handlers.NewReviewHandler(catalog)
	deps.RunsHandler = handlers.NewRunsHandler(catalog)

	return fn(deps)
}

// newLogger builds the command logger; --verbose forces debug level.
func newLogger(cfg *config.Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	opts := logging.FromConfig(cfg.Log)
	if globalVerbose {
		opts.Level = "debug"
	}
	return logging.New(stderr, opts)
}

// groupOptions returns the configured grouping defaults.
func groupOptions(cfg *config.Config) services.GroupOptions {
	return services.GroupOptions{
		ConsiderDates: cfg.Grouping.ConsiderDates,
		RootLabel:     cfg.Grouping.RootLabel,
	}
}
