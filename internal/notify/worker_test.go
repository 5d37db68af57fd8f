package notify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pm-dashboard-backend/internal/db"
	"pm-dashboard-backend/internal/model"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func pushResponse(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewBufferString(""))}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, newTestDB(t), &webpush.Options{})

	rec := model.AssetRecord{ID: "TC-0001"}
	wp.Dispatch(rec)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, "TC-0001", job.ID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_SendsReminder(t *testing.T) {
	gdb := newTestDB(t)
	require.NoError(t, gdb.Create(&model.PushSubscription{
		Endpoint: "https://example.com/push",
		P256DH:   "test_p256dh",
		Auth:     "test_auth",
	}).Error)

	wp := NewWorkerPool(1, gdb, &webpush.Options{})

	var wg sync.WaitGroup
	wg.Add(1)
	wp.SetSender(&mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://example.com/push", sub.Endpoint)
			assert.Equal(t, "Preventive maintenance due for Core Server v1 (next PM 15-07-2025)", string(payload))
			wg.Done()
			return pushResponse(http.StatusCreated), nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(model.AssetRecord{
		ID:                  "PM-2568-001",
		AssetName:           "Core Server v1",
		Department:          "IT / ไอที",
		NextMaintenanceDate: "2025-07-15",
	})
	wg.Wait()
}

func TestWorkerPool_DepartmentFilter(t *testing.T) {
	gdb := newTestDB(t)
	require.NoError(t, gdb.Create(&model.PushSubscription{
		Endpoint:   "https://example.com/qa-only",
		P256DH:     "k",
		Auth:       "a",
		Department: "QA/QC",
	}).Error)

	wp := NewWorkerPool(1, gdb, &webpush.Options{})

	var mu sync.Mutex
	var delivered []string
	wp.SetSender(&mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			mu.Lock()
			delivered = append(delivered, sub.Endpoint)
			mu.Unlock()
			return pushResponse(http.StatusCreated), nil
		},
	})

	ctx := context.Background()
	wp.sendRemindersForAsset(ctx, model.AssetRecord{ID: "HR-1", Department: "HR admin"})
	wp.sendRemindersForAsset(ctx, model.AssetRecord{ID: "QA-1", Department: "QA/QC"})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1, "a department-scoped subscription only hears about its own assets")
	assert.Equal(t, "https://example.com/qa-only", delivered[0])
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	gdb := newTestDB(t)
	require.NoError(t, gdb.Create(&model.PushSubscription{
		Endpoint: "https://example.com/expired",
		P256DH:   "k",
		Auth:     "a",
	}).Error)

	wp := NewWorkerPool(1, gdb, &webpush.Options{})
	wp.SetSender(&mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return pushResponse(http.StatusGone), nil
		},
	})

	wp.sendRemindersForAsset(context.Background(), model.AssetRecord{ID: "TC-1", Department: "QA/QC"})

	var count int64
	gdb.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count, "a 410 response prunes the subscription")
}
