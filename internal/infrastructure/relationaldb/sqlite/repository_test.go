package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func newRun(id string, created time.Time) *entities.Run {
	return &entities.Run{ID: id, Source: id + ".json", Total: 2, Persons: 2, Flagged: 1, CreatedAt: created}
}

func sampleRecords() []entities.Record {
	return []entities.Record{
		{
			ID:             "rec-1",
			Position:       0,
			Name:           entities.Ptr("Tolkien, J. R. R. (writer), 1892-1973"),
			Kind:           entities.KindPerson,
			Dates:          entities.Ptr("1892-1973"),
			Parentheticals: []string{"writer"},
			DatesRemoved:   entities.Ptr("Tolkien, J. R. R. (writer)"),
			CleanName:      entities.Ptr("J. R. R. Tolkien"),
			LastName:       entities.Ptr("Tolkien"),
			FirstName:      entities.Ptr("J."),
			MiddleName:     entities.Ptr("R. R."),
			Extra:          map[string]any{"link": "https://example.org/view/person/1"},
		},
		{
			ID:             "rec-2",
			Position:       1,
			Name:           entities.Ptr("Doe, Jane (poet"),
			Kind:           entities.KindPerson,
			ManualReview:   true,
			Parentheticals: []string{},
		},
	}
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("creates parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalogs", "main", "namesift.db")
		repo, err := NewRepository(config.SQLiteConfig{Path: path})
		require.NoError(t, err)
		defer repo.Close()
		require.NoError(t, repo.EnsureSchema(context.Background()))
		assert.Equal(t, path, repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	for _, table := range []string{"runs", "records"} {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_SaveRun_RoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveRun(ctx, newRun("run-1", created), sampleRecords()))

	run, err := repo.FindRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1.json", run.Source)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Flagged)
	assert.True(t, created.Equal(run.CreatedAt))

	records, err := repo.ListRecords(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	tolkien := records[0]
	assert.Equal(t, "rec-1", tolkien.ID)
	assert.Equal(t, entities.KindPerson, tolkien.Kind)
	assert.Equal(t, "J. R. R. Tolkien", *tolkien.CleanName)
	assert.Equal(t, "R. R.", *tolkien.MiddleName)
	assert.Equal(t, []string{"writer"}, tolkien.Parentheticals)
	assert.Equal(t, "https://example.org/view/person/1", tolkien.Extra["link"])
	assert.Nil(t, tolkien.Suffix)
	assert.Nil(t, tolkien.Nickname)
	assert.False(t, tolkien.ManualReview)

	doe := records[1]
	assert.True(t, doe.ManualReview)
	assert.NotNil(t, doe.Parentheticals)
	assert.Empty(t, doe.Parentheticals)
	assert.Nil(t, doe.CleanName)
	assert.Nil(t, doe.Dates)
	assert.Nil(t, doe.Extra)
}

func TestRepository_SaveRun_RollsBack(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	records := sampleRecords()
	records[1].ID = records[0].ID // primary key violation on the second insert

	err := repo.SaveRun(ctx, newRun("run-1", time.Now().UTC()), records)
	require.Error(t, err)

	_, err = repo.FindRun(ctx, "run-1")
	assert.ErrorIs(t, err, entities.ErrRunNotFound)

	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRepository_FindRun_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindRun(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrRunNotFound)

	_, err = repo.LatestRun(context.Background())
	assert.ErrorIs(t, err, entities.ErrRunNotFound)
}

func TestRepository_LatestAndListRuns(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveRun(ctx, newRun("old", base), nil))
	require.NoError(t, repo.SaveRun(ctx, newRun("new", base.Add(time.Hour)), nil))
	require.NoError(t, repo.SaveRun(ctx, newRun("mid", base.Add(time.Minute)), nil))

	latest, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.ID)

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)

	runs, err = repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRepository_ListManualReview(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SaveRun(ctx, newRun("run-1", time.Now().UTC()), sampleRecords()))

	flagged, err := repo.ListManualReview(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, "rec-2", flagged[0].ID)

	flagged, err = repo.ListManualReview(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, flagged)
}

func TestRepository_DeleteRun(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SaveRun(ctx, newRun("run-1", time.Now().UTC()), sampleRecords()))

	require.NoError(t, repo.DeleteRun(ctx, "run-1"))

	_, err := repo.FindRun(ctx, "run-1")
	assert.ErrorIs(t, err, entities.ErrRunNotFound)
	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	err = repo.DeleteRun(ctx, "run-1")
	assert.ErrorIs(t, err, entities.ErrRunNotFound)
}

func TestRepository_FileDatabase_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "namesift.db")
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	repo, err := NewRepository(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.SaveRun(ctx, newRun("run-1", created), sampleRecords()))
	require.NoError(t, repo.Close())

	repo, err = NewRepository(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.EnsureSchema(ctx))

	run, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.True(t, created.Equal(run.CreatedAt), "created_at %v", run.CreatedAt)

	records, err := repo.ListRecords(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "J. R. R. Tolkien", entities.Str(records[0].CleanName))

	require.NoError(t, repo.DeleteRun(ctx, "run-1"))
	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
