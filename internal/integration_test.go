package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pm-dashboard-backend/config"
	"pm-dashboard-backend/internal/db"
	"pm-dashboard-backend/internal/metrics"
	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/reconcile"
	"pm-dashboard-backend/internal/store"
	"pm-dashboard-backend/internal/syncer"
)

// TestSheetSyncLifecycle walks the full data round trip: pull the remote
// sheet into the local store, save an edit locally, and watch the edit go
// back out through the push queue.
func TestSheetSyncLifecycle(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, db.Migrate(testDB))

	// Mock sheet endpoint: GET serves two positional rows, POST records the
	// pushed body.
	pushed := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			pushed <- body
			w.WriteHeader(http.StatusOK)
			return
		}

		assert.NotEmpty(t, r.URL.Query().Get("_t"), "fetch must carry a cache buster")
		rows := [][]any{
			{"PC-001", "2025-01-10", "2025-07-10", "IT / ไอที", "Computer", "Alice", "Completed"},
			{"PR-001", "2025-06-01", "", "HR admin", "Printer", "Bob", "Pending"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}))
	defer server.Close()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	appStore := store.NewGormStore(testDB)
	syncSvc := syncer.NewService(cfg, appStore, metrics.New())

	ctx := context.Background()
	require.NoError(t, appStore.SetEndpointURL(ctx, server.URL))

	t.Run("pull replaces local collection", func(t *testing.T) {
		require.NoError(t, syncSvc.SyncOnce(ctx))

		assets, err := appStore.LoadAssets(ctx)
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, "PC-001", assets[0].ID)
		assert.Equal(t, model.DevicePrinter, assets[1].DeviceType)

		status := syncSvc.Status()
		require.NotNil(t, status.Connected)
		assert.True(t, *status.Connected)
	})

	t.Run("local save derives next due and persists", func(t *testing.T) {
		assets, err := appStore.LoadAssets(ctx)
		require.NoError(t, err)

		draft := assets[1]
		draft.LastMaintenanceDate = "2025-08-01"
		draft.MaintenanceStatus = model.StatusCompleted

		merged, err := reconcile.MergeOnSave(assets, draft)
		require.NoError(t, err)
		require.NoError(t, appStore.ReplaceAssets(ctx, merged))

		assets, err = appStore.LoadAssets(ctx)
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, "2025-10-01", assets[1].NextMaintenanceDate)
	})

	t.Run("push sends the saved record upstream", func(t *testing.T) {
		syncSvc.Start(ctx)

		assets, err := appStore.LoadAssets(ctx)
		require.NoError(t, err)
		syncSvc.EnqueuePush(assets[1])

		select {
		case body := <-pushed:
			var payload struct {
				Values []string `json:"values"`
			}
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, "PR-001", payload.Values[0])
			assert.Equal(t, "2025-10-01", payload.Values[2])
		case <-time.After(5 * time.Second):
			t.Fatal("push never reached the sheet endpoint")
		}
	})
}
