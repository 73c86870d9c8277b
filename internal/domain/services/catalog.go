package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/domain/ports"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Normalize without saving
}

// ImportWarning describes a record that was imported but cannot be grouped.
type ImportWarning struct {
	Line    int    // Record number (1-indexed)
	Field   string // Which field caused the warning
	Message string // Human-readable message
}

func (w ImportWarning) String() string {
	return fmt.Sprintf("record %d (%s): %s", w.Line, w.Field, w.Message)
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Run      *entities.Run
	Stats    PipelineStats
	Warnings []ImportWarning
}

// CatalogService normalizes acquired records and persists them as runs.
type CatalogService struct {
	store      ports.RecordStore
	normalizer *NormalizeService
	log        *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store ports.RecordStore, normalizer *NormalizeService, log *slog.Logger) *CatalogService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &CatalogService{
		store:      store,
		normalizer: normalizer,
		log:        log,
	}
}

// Import normalizes records and saves them as a new run of source.
func (s *CatalogService) Import(ctx context.Context, source string, records []entities.Record, opts ImportOptions) (*ImportResult, error) {
	if len(records) == 0 {
		return nil, entities.ErrEmptyInput
	}

	result := &ImportResult{Warnings: checkRecords(records)}

	normalized, stats := s.normalizer.Normalize(records)
	result.Stats = stats

	for i := range normalized {
		if normalized[i].ID == "" {
			normalized[i].ID = uuid.New().String()
		}
	}

	run := &entities.Run{
		ID:        uuid.New().String(),
		Source:    source,
		Total:     stats.Total,
		Persons:   stats.Persons,
		Flagged:   stats.Flagged,
		CreatedAt: time.Now().UTC(),
	}
	result.Run = run

	if opts.DryRun {
		return result, nil
	}

	if err := s.store.SaveRun(ctx, run, normalized); err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}
	s.log.Info("run saved", "run", run.ID, "source", source, "records", len(normalized))

	return result, nil
}

// Load returns a run and its records. An empty runID selects the latest run.
func (s *CatalogService) Load(ctx context.Context, runID string) (*entities.Run, []entities.Record, error) {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.store.ListRecords(ctx, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing records: %w", err)
	}

	return run, records, nil
}

// Flagged returns the records of a run that need manual review.
func (s *CatalogService) Flagged(ctx context.Context, runID string) (*entities.Run, []entities.Record, error) {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.store.ListManualReview(ctx, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing flagged records: %w", err)
	}

	return run, records, nil
}

// Runs lists stored runs, newest first.
func (s *CatalogService) Runs(ctx context.Context, limit int) ([]entities.Run, error) {
	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its records.
func (s *CatalogService) DeleteRun(ctx context.Context, runID string) error {
	if err := s.store.DeleteRun(ctx, runID); err != nil {
		return fmt.Errorf("deleting run %s: %w", runID, err)
	}
	s.log.Info("run deleted", "run", runID)
	return nil
}

func (s *CatalogService) findRun(ctx context.Context, runID string) (*entities.Run, error) {
	var (
		run *entities.Run
		err error
	)
	if runID == "" {
		run, err = s.store.LatestRun(ctx)
	} else {
		run, err = s.store.FindRun(ctx, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("finding run: %w", err)
	}
	return run, nil
}

// checkRecords reports records that will be kept but left out of the hierarchy
// for reasons visible before normalization.
func checkRecords(records []entities.Record) []ImportWarning {
	var warnings []ImportWarning
	for i := range records {
		r := &records[i]
		line := r.Position + 1
		switch {
		case r.Kind == entities.KindUnknown:
			warnings = append(warnings, ImportWarning{
				Line:    line,
				Field:   "type",
				Message: "missing or unrecognized type (valid: person, group)",
			})
		case r.IsPerson() && entities.Str(r.Name) == "":
			warnings = append(warnings, ImportWarning{
				Line:    line,
				Field:   "name",
				Message: "person record without a name",
			})
		}
	}
	return warnings
}
