// Package sqlite provides a SQLite implementation of the RecordStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/infrastructure/config"
)

const memoryPath = ":memory:"

// dsnParams are applied to every pooled connection. The sqlite time format
// keeps created_at sortable as text.
const dsnParams = "?_pragma=foreign_keys(1)&_time_format=sqlite"

// Repository implements ports.RecordStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository, creating the parent
// directory of the database file when needed.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	if cfg.Path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if cfg.Path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Runs (one normalization pass over an input file)
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		total INTEGER NOT NULL,
		persons INTEGER NOT NULL,
		flagged INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

	-- Normalized records (NULL columns are absent fields)
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT,
		kind TEXT NOT NULL,
		dates TEXT,
		manual_review INTEGER NOT NULL DEFAULT 0,
		parentheticals TEXT,
		dates_removed TEXT,
		clean_name TEXT,
		last_name TEXT,
		first_name TEXT,
		middle_name TEXT,
		suffix TEXT,
		nickname TEXT,
		extra TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id, position);
	CREATE INDEX IF NOT EXISTS idx_records_review ON records(run_id, manual_review);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveRun stores a run and all of its records in one transaction.
func (r *Repository) SaveRun(ctx context.Context, run *entities.Run, records []entities.Record) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, total, persons, flagged, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Total, run.Persons, run.Flagged, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			id, run_id, position, name, kind, dates, manual_review, parentheticals,
			dates_removed, clean_name, last_name, first_name, middle_name, suffix, nickname, extra
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		parens, err := encodeJSON(rec.Parentheticals)
		if err != nil {
			return fmt.Errorf("encoding parentheticals of record %d: %w", rec.Position, err)
		}
		extra, err := encodeJSON(rec.Extra)
		if err != nil {
			return fmt.Errorf("encoding extra fields of record %d: %w", rec.Position, err)
		}

		_, err = stmt.ExecContext(ctx,
			rec.ID, run.ID, rec.Position, rec.Name, string(rec.Kind), rec.Dates, rec.ManualReview, parens,
			rec.DatesRemoved, rec.CleanName, rec.LastName, rec.FirstName, rec.MiddleName, rec.Suffix, rec.Nickname, extra,
		)
		if err != nil {
			return fmt.Errorf("saving record %d: %w", rec.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

const runColumns = `id, source, total, persons, flagged, created_at`

// FindRun returns a run by ID.
func (r *Repository) FindRun(ctx context.Context, id string) (*entities.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// LatestRun returns the most recently created run.
func (r *Repository) LatestRun(ctx context.Context) (*entities.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	return scanRun(row)
}

// ListRuns lists runs, newest first. A non-positive limit lists all runs.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]entities.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []entities.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its records.
func (r *Repository) DeleteRun(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted run: %w", err)
	}
	if affected == 0 {
		err = entities.ErrRunNotFound
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

const recordColumns = `id, position, name, kind, dates, manual_review, parentheticals,
	dates_removed, clean_name, last_name, first_name, middle_name, suffix, nickname, extra`

// ListRecords returns a run's records in input order.
func (r *Repository) ListRecords(ctx context.Context, runID string) ([]entities.Record, error) {
	return r.queryRecords(ctx, `SELECT `+recordColumns+` FROM records WHERE run_id = ? ORDER BY position`, runID)
}

// ListManualReview returns a run's records flagged for manual review in input order.
func (r *Repository) ListManualReview(ctx context.Context, runID string) ([]entities.Record, error) {
	return r.queryRecords(ctx, `SELECT `+recordColumns+` FROM records WHERE run_id = ? AND manual_review = 1 ORDER BY position`, runID)
}

// CountRecords returns the number of stored records across all runs.
func (r *Repository) CountRecords(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

func (r *Repository) queryRecords(ctx context.Context, query string, args ...any) ([]entities.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []entities.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*entities.Run, error) {
	var run entities.Run
	err := s.Scan(&run.ID, &run.Source, &run.Total, &run.Persons, &run.Flagged, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return &run, nil
}

func scanRecord(s scanner) (entities.Record, error) {
	var (
		rec           entities.Record
		kind          string
		parens, extra sql.NullString
	)
	err := s.Scan(
		&rec.ID, &rec.Position, &rec.Name, &kind, &rec.Dates, &rec.ManualReview, &parens,
		&rec.DatesRemoved, &rec.CleanName, &rec.LastName, &rec.FirstName, &rec.MiddleName,
		&rec.Suffix, &rec.Nickname, &extra,
	)
	if err != nil {
		return rec, fmt.Errorf("scanning record: %w", err)
	}
	rec.Kind = entities.Kind(kind)

	if parens.Valid {
		if err := json.Unmarshal([]byte(parens.String), &rec.Parentheticals); err != nil {
			return rec, fmt.Errorf("decoding parentheticals of record %s: %w", rec.ID, err)
		}
	}
	if extra.Valid {
		if err := json.Unmarshal([]byte(extra.String), &rec.Extra); err != nil {
			return rec, fmt.Errorf("decoding extra fields of record %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}

// encodeJSON stores nil slices and maps as NULL so absence survives a round trip.
func encodeJSON[T any](v T) (*string, error) {
	switch x := any(v).(type) {
	case []string:
		if x == nil {
			return nil, nil
		}
	case map[string]any:
		if x == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
