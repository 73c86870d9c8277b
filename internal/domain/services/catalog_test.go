package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/domain/mocks"
)

func newCatalogService(store *mocks.RecordStore) *CatalogService {
	return NewCatalogService(store, NewNormalizeService(&mocks.NameDecomposer{}, nil), nil)
}

func TestCatalogService_Import(t *testing.T) {
	store := mocks.NewRecordStore()
	service := newCatalogService(store)

	records := []entities.Record{
		person("Tolkien, J.R.R. (writer), 1892-1973"),
		person("Doe, Jane (poet"),
		{Name: entities.Ptr("Inklings"), Kind: entities.KindGroup, Position: 2},
	}

	result, err := service.Import(context.Background(), "search.json", records, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Run.Total)
	assert.Equal(t, 2, result.Run.Persons)
	assert.Equal(t, 1, result.Run.Flagged)
	assert.Equal(t, 2, result.Run.Excluded())
	assert.Equal(t, "search.json", result.Run.Source)
	assert.Empty(t, result.Warnings)

	require.Len(t, store.Runs, 1)
	saved := store.Records[result.Run.ID]
	require.Len(t, saved, 3)
	for _, r := range saved {
		assert.NotEmpty(t, r.ID)
	}
	assert.Equal(t, "J. R. R. Tolkien", *saved[0].CleanName)
}

func TestCatalogService_Import_DryRun(t *testing.T) {
	store := mocks.NewRecordStore()
	service := newCatalogService(store)

	result, err := service.Import(context.Background(), "x.json", []entities.Record{person("Doe, Jane")}, ImportOptions{DryRun: true})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Run.ID)
	assert.Empty(t, store.Runs)
}

func TestCatalogService_Import_Empty(t *testing.T) {
	service := newCatalogService(mocks.NewRecordStore())

	_, err := service.Import(context.Background(), "x.json", nil, ImportOptions{})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)
}

func TestCatalogService_Import_Warnings(t *testing.T) {
	service := newCatalogService(mocks.NewRecordStore())

	records := []entities.Record{
		{Name: entities.Ptr("Somebody"), Kind: entities.KindUnknown},
		{Kind: entities.KindPerson, Position: 1},
		person("Doe, Jane"),
	}

	result, err := service.Import(context.Background(), "x.json", records, ImportOptions{DryRun: true})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "type", result.Warnings[0].Field)
	assert.Equal(t, 1, result.Warnings[0].Line)
	assert.Equal(t, "name", result.Warnings[1].Field)
	assert.Equal(t, "record 2 (name): person record without a name", result.Warnings[1].String())
	assert.Equal(t, "record 1 (type): missing or unrecognized type (valid: person, group)", result.Warnings[0].String())
}

func TestCatalogService_Import_StoreError(t *testing.T) {
	store := mocks.NewRecordStore()
	store.Err = errors.New("disk full")
	service := newCatalogService(store)

	_, err := service.Import(context.Background(), "x.json", []entities.Record{person("Doe, Jane")}, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving run")
}

func TestCatalogService_Load(t *testing.T) {
	store := mocks.NewRecordStore()
	service := newCatalogService(store)
	ctx := context.Background()

	first, err := service.Import(ctx, "a.json", []entities.Record{person("Doe, Jane")}, ImportOptions{})
	require.NoError(t, err)
	second, err := service.Import(ctx, "b.json", []entities.Record{person("Roe, Rick"), person("Roe, Amy")}, ImportOptions{})
	require.NoError(t, err)

	run, records, err := service.Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, second.Run.ID, run.ID)
	assert.Len(t, records, 2)

	run, records, err = service.Load(ctx, first.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.json", run.Source)
	assert.Len(t, records, 1)

	_, _, err = service.Load(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrRunNotFound)
}

func TestCatalogService_Load_NoRuns(t *testing.T) {
	service := newCatalogService(mocks.NewRecordStore())

	_, _, err := service.Load(context.Background(), "")
	assert.ErrorIs(t, err, entities.ErrRunNotFound)
}

func TestCatalogService_Flagged(t *testing.T) {
	store := mocks.NewRecordStore()
	service := newCatalogService(store)
	ctx := context.Background()

	_, err := service.Import(ctx, "a.json", []entities.Record{person("Doe, Jane (poet"), person("Roe, Rick")}, ImportOptions{})
	require.NoError(t, err)

	_, flagged, err := service.Flagged(ctx, "")
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Doe, Jane (poet", *flagged[0].Name)
}

func TestCatalogService_RunsAndDelete(t *testing.T) {
	store := mocks.NewRecordStore()
	service := newCatalogService(store)
	ctx := context.Background()

	result, err := service.Import(ctx, "a.json", []entities.Record{person("Doe, Jane")}, ImportOptions{})
	require.NoError(t, err)

	runs, err := service.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	require.NoError(t, service.DeleteRun(ctx, result.Run.ID))
	runs, err = service.Runs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	err = service.DeleteRun(ctx, result.Run.ID)
	assert.ErrorIs(t, err, entities.ErrRunNotFound)
}
