package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pm-dashboard-backend/config"
	"pm-dashboard-backend/internal/gate"
	"pm-dashboard-backend/internal/metrics"
	"pm-dashboard-backend/internal/mw"
	"pm-dashboard-backend/internal/notify"
	"pm-dashboard-backend/internal/store"
	"pm-dashboard-backend/internal/syncer"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, sync *syncer.Service, g *gate.Gate, reminders *notify.WorkerPool, m *metrics.Metrics, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	handler := NewHandler(cfg, s, sync, g, reminders, cacheStore, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	r.Use(mw.Session())
	r.Use(m.Middleware())

	r.GET("/", handler.GetRoot)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/login", handler.PostLogin)
		api.POST("/logout", handler.PostLogout)
		api.POST("/unlock", handler.PostUnlock)

		api.GET("/assets", caching, handler.GetAssets)
		api.GET("/assets/:id", handler.GetAsset)
		api.PUT("/assets", handler.requireAdmin, handler.PutAsset)
		api.DELETE("/assets/:id", handler.requireAdmin, handler.DeleteAsset)

		api.GET("/stats", caching, handler.GetStats)

		api.POST("/sync", handler.requireAdmin, handler.PostSync)
		api.GET("/sync/status", handler.GetSyncStatus)

		api.GET("/settings/endpoint", handler.requireAdmin, handler.GetEndpoint)
		api.PUT("/settings/endpoint", handler.requireAdmin, handler.PutEndpoint)

		api.GET("/export", handler.requireAdmin, handler.GetExport)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
