package notify

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/pmdate"
)

// Sender defines the interface for delivering one web push message.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool delivers maintenance-due reminders for assets. Delivery is
// best-effort and failures only get logged.
type WorkerPool struct {
	size    int
	jobs    chan model.AssetRecord
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new reminder worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan model.AssetRecord, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// SetSender swaps the delivery backend; tests inject a fake here.
func (wp *WorkerPool) SetSender(s Sender) { wp.sender = s }

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Reminder worker %d started", id)
	for {
		select {
		case rec := <-wp.jobs:
			wp.sendRemindersForAsset(ctx, rec)
		case <-ctx.Done():
			log.Printf("Reminder worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a reminder for the asset.
func (wp *WorkerPool) Dispatch(rec model.AssetRecord) {
	wp.jobs <- rec
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.AssetRecord {
	return wp.jobs
}

// sendRemindersForAsset fans the reminder out to every matching subscription.
// Subscriptions with a department filter only receive reminders for assets in
// that department.
func (wp *WorkerPool) sendRemindersForAsset(ctx context.Context, rec model.AssetRecord) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Where("department = ? OR department = ''", rec.Department).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for asset %s: %v", rec.ID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	label := rec.AssetName
	if label == "" {
		label = rec.ID
	}
	message := fmt.Sprintf("Preventive maintenance due for %s (next PM %s)",
		label, pmdate.DisplayDate(rec.NextMaintenanceDate))

	log.Printf("Sending %d reminders for asset %s", len(subscriptions), rec.ID)
	for _, sub := range subscriptions {
		wp.sendReminder(ctx, sub, []byte(message))
	}
}

// sendReminder delivers a single web push message.
func (wp *WorkerPool) sendReminder(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending reminder to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Prune expired subscriptions.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
