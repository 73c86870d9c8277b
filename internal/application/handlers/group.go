package handlers

import (
	"context"
	"errors"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/domain/services"
)

// GroupHandler builds the name hierarchy from a file or a stored run.
type GroupHandler struct {
	normalizer *services.NormalizeService
	grouping   *services.GroupingService
	catalog    *services.CatalogService
}

// NewGroupHandler creates a new group handler. catalog may be nil when only
// files are grouped.
func NewGroupHandler(normalizer *services.NormalizeService, grouping *services.GroupingService, catalog *services.CatalogService) *GroupHandler {
	return &GroupHandler{
		normalizer: normalizer,
		grouping:   grouping,
		catalog:    catalog,
	}
}

// GroupRequest selects the input. File wins over RunID; with neither, the
// latest stored run is used.
type GroupRequest struct {
	File    string
	Format  string
	RunID   string
	Options services.GroupOptions
}

// GroupResult contains the hierarchy and everything derived from it.
type GroupResult struct {
	Run      *entities.Run // nil when grouping a file
	Records  []entities.Record
	Stats    services.PipelineStats
	Tree     *entities.Tree
	Overlaps []entities.Overlap
}

// Handle loads or normalizes records, groups them and detects overlaps.
func (h *GroupHandler) Handle(ctx context.Context, req GroupRequest) (*GroupResult, error) {
	result := &GroupResult{}

	if req.File != "" {
		raw, err := readRecords(req.File, req.Format)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			return nil, entities.ErrEmptyInput
		}
		result.Records, result.Stats = h.normalizer.Normalize(raw)
	} else {
		if h.catalog == nil {
			return nil, errors.New("no input file given and no catalog selected")
		}
		run, records, err := h.catalog.Load(ctx, req.RunID)
		if err != nil {
			return nil, err
		}
		result.Run = run
		result.Records = records
		result.Stats = services.Summarize(records)
	}

	result.Tree = h.grouping.Group(result.Records, req.Options)
	result.Overlaps = services.DetectOverlaps(result.Tree)

	return result, nil
}
