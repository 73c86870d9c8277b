package ports

import (
	"context"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// RecordStore persists normalized records grouped into runs.
type RecordStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveRun stores a run and all of its records atomically.
	SaveRun(ctx context.Context, run *entities.Run, records []entities.Record) error

	// FindRun returns a run by ID, or entities.ErrRunNotFound.
	FindRun(ctx context.Context, id string) (*entities.Run, error)

	// LatestRun returns the most recent run, or entities.ErrRunNotFound.
	LatestRun(ctx context.Context) (*entities.Run, error)

	// ListRuns lists runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]entities.Run, error)

	// ListRecords returns a run's records in input order.
	ListRecords(ctx context.Context, runID string) ([]entities.Record, error)

	// ListManualReview returns a run's records flagged for manual review.
	ListManualReview(ctx context.Context, runID string) ([]entities.Record, error)

	// DeleteRun removes a run and its records.
	DeleteRun(ctx context.Context, id string) error
}
