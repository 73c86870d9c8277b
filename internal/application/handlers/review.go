package handlers

import (
	"context"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/domain/services"
)

// ReviewHandler lists records that need manual review.
type ReviewHandler struct {
	service *services.CatalogService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service *services.CatalogService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ReviewResult contains the flagged records of one run.
type ReviewResult struct {
	Run     *entities.Run
	Records []entities.Record
}

// Handle returns the flagged records of runID, or of the latest run when empty.
func (h *ReviewHandler) Handle(ctx context.Context, runID string) (*ReviewResult, error) {
	run, records, err := h.service.Flagged(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &ReviewResult{Run: run, Records: records}, nil
}
