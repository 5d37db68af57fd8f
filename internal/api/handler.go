package api

import (
	"sync"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"pm-dashboard-backend/config"
	"pm-dashboard-backend/internal/gate"
	"pm-dashboard-backend/internal/notify"
	"pm-dashboard-backend/internal/store"
	"pm-dashboard-backend/internal/syncer"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	store     store.Store
	sync      *syncer.Service
	gate      *gate.Gate
	reminders *notify.WorkerPool
	respCache *cache.Cache
	webpush   *webpush.Options

	mu     sync.Mutex
	admins map[string]bool
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, st store.Store, sync *syncer.Service, g *gate.Gate, reminders *notify.WorkerPool, respCache *cache.Cache, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     st,
		sync:      sync,
		gate:      g,
		reminders: reminders,
		respCache: respCache,
		webpush:   webpushOptions,
		admins:    make(map[string]bool),
	}
}

func (h *Handler) isAdmin(sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.admins[sessionID]
}

func (h *Handler) setAdmin(sessionID string, admin bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if admin {
		h.admins[sessionID] = true
	} else {
		delete(h.admins, sessionID)
	}
}
