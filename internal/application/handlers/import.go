package handlers

import (
	"context"
	"path/filepath"

	"github.com/ersonp/namesift/internal/domain/services"
)

// ImportHandler handles importing acquired records into a catalog.
type ImportHandler struct {
	service *services.CatalogService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.CatalogService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
	DryRun bool   // Normalize without saving
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	RunID    string
	Total    int
	Persons  int
	Flagged  int
	Excluded int
	Warnings []services.ImportWarning
}

// Handle normalizes the records in a file and stores them as a new run.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	records, err := readRecords(filePath, opts.Format)
	if err != nil {
		return nil, err
	}

	serviceResult, err := h.service.Import(ctx, filepath.Base(filePath), records, services.ImportOptions{
		DryRun: opts.DryRun,
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		RunID:    serviceResult.Run.ID,
		Total:    serviceResult.Stats.Total,
		Persons:  serviceResult.Stats.Persons,
		Flagged:  serviceResult.Stats.Flagged,
		Excluded: serviceResult.Stats.Excluded(),
		Warnings: serviceResult.Warnings,
	}, nil
}
