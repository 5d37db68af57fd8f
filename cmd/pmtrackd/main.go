package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"pm-dashboard-backend/config"
	"pm-dashboard-backend/internal/api"
	"pm-dashboard-backend/internal/db"
	"pm-dashboard-backend/internal/gate"
	"pm-dashboard-backend/internal/metrics"
	"pm-dashboard-backend/internal/notify"
	"pm-dashboard-backend/internal/sched"
	"pm-dashboard-backend/internal/store"
	"pm-dashboard-backend/internal/syncer"
)

func main() {
	logger := log.New(os.Stdout, "pm-dashboard ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	// Seed the sheet endpoint from config on a fresh install. A URL already
	// stored by the user wins.
	if cfg.Sync.DefaultEndpointURL != "" {
		if existing, err := appStore.EndpointURL(ctx); err == nil && existing == "" {
			if err := appStore.SetEndpointURL(ctx, cfg.Sync.DefaultEndpointURL); err != nil {
				logger.Printf("failed to seed endpoint url: %v", err)
			}
		}
	}

	m := metrics.New()

	syncSvc := syncer.NewService(cfg, appStore, m)
	syncSvc.Start(ctx)
	if cfg.Sync.SyncOnStart {
		go func() {
			if err := syncSvc.SyncOnce(ctx); err != nil {
				logger.Printf("initial sync failed: %v", err)
			}
		}()
	}

	// Web push reminders only run with VAPID keys configured; the rest of
	// the system works without them.
	var webpushOptions *webpush.Options
	var reminderPool *notify.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		reminderPool = notify.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		reminderPool.Start(ctx)

		if cfg.Reminder.Enabled {
			scheduler := sched.New(appStore, reminderPool)
			if err := scheduler.Start(ctx, cfg.Reminder.Schedule); err != nil {
				logger.Fatalf("failed to start reminder scheduler: %v", err)
			}
			defer scheduler.Stop()
			logger.Printf("reminder scheduler running (%s)", cfg.Reminder.Schedule)
		}
	} else {
		logger.Println("VAPID keys not configured; web push reminders disabled")
	}

	disclosureGate := gate.New(cfg.Security.PublicPIN)

	router := api.NewRouter(cfg, appStore, syncSvc, disclosureGate, reminderPool, m, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
