package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/taxease/internal/common"
	"github.com/hollis/taxease/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadRulesBeforeFirstSave(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.LoadRules(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveAndLoadRules(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	rules := []model.VendorRule{
		{ID: "1", VendorNamePattern: "Uber", TaxCategory: model.CategoryTravel},
		{ID: "2", VendorNamePattern: "Shell", TaxCategory: model.CategoryCarTruck},
	}
	require.NoError(t, s.SaveRules(ctx, rules))

	loaded, err := s.LoadRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
}

func TestSaveRulesReplacesSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	require.NoError(t, s.SaveRules(ctx, []model.VendorRule{
		{ID: "1", VendorNamePattern: "Uber", TaxCategory: model.CategoryTravel},
	}))
	require.NoError(t, s.SaveRules(ctx, []model.VendorRule{
		{ID: "2", VendorNamePattern: "Adobe", TaxCategory: model.CategoryOfficeExpense},
	}))

	loaded, err := s.LoadRules(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Adobe", loaded[0].VendorNamePattern)
}

func TestSaveEmptyRuleSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	require.NoError(t, s.SaveRules(ctx, []model.VendorRule{}))

	loaded, err := s.LoadRules(ctx)
	require.NoError(t, err, "an explicitly saved empty set is not a missing slot")
	assert.Empty(t, loaded)
}

func TestRulesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "taxease.db")

	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.SaveRules(ctx, []model.VendorRule{
		{ID: "1", VendorNamePattern: "Zoom", TaxCategory: model.CategoryOfficeExpense},
	}))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.LoadRules(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Zoom", loaded[0].VendorNamePattern)
}

func TestLoadRulesCorruptSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
	`, rulesSlot, "{not json")
	require.NoError(t, err)

	_, err = s.LoadRules(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound, "corruption is not the same as absence")
}

func TestNewSQLiteStorageEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}
