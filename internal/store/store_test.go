package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pm-dashboard-backend/internal/db"
	"pm-dashboard-backend/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return NewGormStore(gdb)
}

func TestLoadAssets_SeedsEmptyStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records, err := s.LoadAssets(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PM-2568-001", records[0].ID)
	assert.Equal(t, model.DeviceComputer, records[0].DeviceType)

	// The seed must have been persisted, not just returned.
	again, err := s.LoadAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, records[0].ID, again[0].ID)
}

func TestReplaceAssets_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []model.AssetRecord{
		{ID: "TC-0001", DeviceType: model.DevicePrinter, Department: "QA/QC", MaintenanceStatus: model.StatusPending},
		{ID: "TC-0002", DeviceType: model.DeviceComputer, Department: "HR admin", MaintenanceStatus: model.StatusCompleted, NextMaintenanceDate: "2025-07-15"},
	}
	require.NoError(t, s.ReplaceAssets(ctx, records))

	loaded, err := s.LoadAssets(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "TC-0001", loaded[0].ID)
	assert.Equal(t, "2025-07-15", loaded[1].NextMaintenanceDate)

	// Replacement is wholesale: a smaller set wipes the rest.
	require.NoError(t, s.ReplaceAssets(ctx, records[:1]))
	loaded, err = s.LoadAssets(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "TC-0001", loaded[0].ID)
}

func TestReplaceAssets_EmptySetThenReseed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAssets(ctx, nil))

	// An emptied store falls back to the seed on the next load.
	records, err := s.LoadAssets(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PM-2568-001", records[0].ID)
}

func TestEndpointURLSetting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	url, err := s.EndpointURL(ctx)
	require.NoError(t, err)
	assert.Empty(t, url, "unset endpoint reads as empty string")

	require.NoError(t, s.SetEndpointURL(ctx, "https://script.example.com/exec"))
	url, err = s.EndpointURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://script.example.com/exec", url)

	require.NoError(t, s.SetEndpointURL(ctx, "https://other.example.com/exec"))
	url, err = s.EndpointURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/exec", url, "setting is replaced, not duplicated")
}
