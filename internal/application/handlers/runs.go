package handlers

import (
	"context"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/domain/services"
)

// RunsHandler lists and deletes stored runs.
type RunsHandler struct {
	service *services.CatalogService
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(service *services.CatalogService) *RunsHandler {
	return &RunsHandler{service: service}
}

// List returns up to limit runs, newest first.
func (h *RunsHandler) List(ctx context.Context, limit int) ([]entities.Run, error) {
	return h.service.Runs(ctx, limit)
}

// Delete removes the given runs, stopping at the first failure.
func (h *RunsHandler) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := h.service.DeleteRun(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
