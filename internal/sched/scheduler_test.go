package sched

import (
	"context"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pm-dashboard-backend/internal/db"
	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/notify"
	"pm-dashboard-backend/internal/pmdate"
	"pm-dashboard-backend/internal/store"
)

func TestScanOnce_DispatchesOnlyDueAssets(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	st := store.NewGormStore(gdb)

	today := pmdate.Today()
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextYear := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	require.NoError(t, st.ReplaceAssets(context.Background(), []model.AssetRecord{
		{ID: "DUE-1", NextMaintenanceDate: yesterday, DeviceType: model.DeviceComputer},
		{ID: "DUE-2", NextMaintenanceDate: today, DeviceType: model.DevicePrinter},
		{ID: "FUTURE", NextMaintenanceDate: nextYear, DeviceType: model.DeviceComputer},
		{ID: "OPEN", NextMaintenanceDate: "", DeviceType: model.DevicePrinter},
	}))

	pool := notify.NewWorkerPool(4, gdb, &webpush.Options{})
	sched := New(st, pool)

	sched.ScanOnce(context.Background())

	var dispatched []string
	for len(pool.Jobs()) > 0 {
		dispatched = append(dispatched, (<-pool.Jobs()).ID)
	}
	assert.ElementsMatch(t, []string{"DUE-1", "DUE-2"}, dispatched)
}

func TestIsDue(t *testing.T) {
	today := "2025-06-01"
	assert.True(t, isDue(model.AssetRecord{NextMaintenanceDate: "2025-05-31"}, today))
	assert.True(t, isDue(model.AssetRecord{NextMaintenanceDate: "2025-06-01"}, today))
	assert.False(t, isDue(model.AssetRecord{NextMaintenanceDate: "2025-06-02"}, today))
	assert.False(t, isDue(model.AssetRecord{NextMaintenanceDate: ""}, today))
	assert.False(t, isDue(model.AssetRecord{NextMaintenanceDate: "garbage"}, today))
}
