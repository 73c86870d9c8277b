package mocks

import (
	"context"
	"slices"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// RecordStore is a mock implementation of ports.RecordStore.
type RecordStore struct {
	Runs    []entities.Run
	Records map[string][]entities.Record
	Err     error
}

// NewRecordStore creates a new mock RecordStore.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		Records: make(map[string][]entities.Record),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RecordStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RecordStore) Close() error {
	return nil
}

// SaveRun stores the run and its records.
func (m *RecordStore) SaveRun(_ context.Context, run *entities.Run, records []entities.Record) error {
	if m.Err != nil {
		return m.Err
	}
	m.Runs = append(m.Runs, *run)
	m.Records[run.ID] = slices.Clone(records)
	return nil
}

// FindRun returns a run by ID.
func (m *RecordStore) FindRun(_ context.Context, id string) (*entities.Run, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Runs {
		if m.Runs[i].ID == id {
			run := m.Runs[i]
			return &run, nil
		}
	}
	return nil, entities.ErrRunNotFound
}

// LatestRun returns the most recently saved run.
func (m *RecordStore) LatestRun(_ context.Context) (*entities.Run, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Runs) == 0 {
		return nil, entities.ErrRunNotFound
	}
	run := m.Runs[len(m.Runs)-1]
	return &run, nil
}

// ListRuns lists runs, newest first.
func (m *RecordStore) ListRuns(_ context.Context, limit int) ([]entities.Run, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	runs := slices.Clone(m.Runs)
	slices.Reverse(runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// ListRecords returns a run's records.
func (m *RecordStore) ListRecords(_ context.Context, runID string) ([]entities.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Clone(m.Records[runID]), nil
}

// ListManualReview returns a run's flagged records.
func (m *RecordStore) ListManualReview(_ context.Context, runID string) ([]entities.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var flagged []entities.Record
	for _, r := range m.Records[runID] {
		if r.ManualReview {
			flagged = append(flagged, r)
		}
	}
	return flagged, nil
}

// DeleteRun removes a run and its records.
func (m *RecordStore) DeleteRun(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	idx := slices.IndexFunc(m.Runs, func(r entities.Run) bool { return r.ID == id })
	if idx < 0 {
		return entities.ErrRunNotFound
	}
	m.Runs = slices.Delete(m.Runs, idx, idx+1)
	delete(m.Records, id)
	return nil
}
