// Package sched runs the daily due-date scan that feeds the reminder worker
// pool. Only the local store is scanned; the remote endpoint is never polled.
package sched

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/notify"
	"pm-dashboard-backend/internal/pmdate"
	"pm-dashboard-backend/internal/store"
)

// Scheduler owns the cron entry for the due-date scan.
type Scheduler struct {
	cron  *cron.Cron
	store store.Store
	pool  *notify.WorkerPool
}

// New creates a scheduler that dispatches reminders through the given pool.
func New(st store.Store, pool *notify.WorkerPool) *Scheduler {
	return &Scheduler{cron: cron.New(), store: st, pool: pool}
}

// Start registers the scan under the given cron schedule and starts the
// timer. The context bounds each individual scan.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.ScanOnce(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Reminder schedule registered: %q", schedule)
	return nil
}

// Stop halts the cron timer. Running scans finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// ScanOnce walks the collection and dispatches a reminder for every asset
// whose next maintenance date is today or earlier.
func (s *Scheduler) ScanOnce(ctx context.Context) {
	records, err := s.store.LoadAssets(ctx)
	if err != nil {
		log.Printf("Due-date scan failed to load assets: %v", err)
		return
	}

	today := pmdate.Today()
	due := 0
	for _, rec := range records {
		if isDue(rec, today) {
			s.pool.Dispatch(rec)
			due++
		}
	}
	if due > 0 {
		log.Printf("Due-date scan dispatched %d reminders", due)
	}
}

func isDue(rec model.AssetRecord, today string) bool {
	next := pmdate.CanonicalDate(rec.NextMaintenanceDate)
	return next != "" && next <= today
}
