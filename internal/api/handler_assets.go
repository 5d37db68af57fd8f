package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pm-dashboard-backend/internal/gate"
	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/mw"
	"pm-dashboard-backend/internal/reconcile"
)

// GetAssets returns the full local collection. Credentials are always
// masked here; the response is cached and shared across sessions, so it can
// never vary by caller. Clients that need the clear values fetch a single
// asset after unlocking.
func (h *Handler) GetAssets(c *gin.Context) {
	assets, err := h.store.LoadAssets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]assetView, len(assets))
	for i, rec := range assets {
		views[i] = newAssetView(gate.Mask(rec))
	}
	c.JSON(http.StatusOK, gin.H{"assets": views})
}

// GetAsset returns one asset by public id. Credentials are masked unless the
// caller's session is unlocked or logged in.
func (h *Handler) GetAsset(c *gin.Context) {
	assets, err := h.store.LoadAssets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rec := reconcile.FindByPublicID(assets, c.Param("id"))
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}

	session := mw.SessionID(c)
	shown := *rec
	if !h.gate.Unlocked(session) && !h.isAdmin(session) {
		shown = gate.Mask(shown)
	}
	c.JSON(http.StatusOK, gin.H{"asset": newAssetView(shown)})
}

// PutAsset validates a draft record, merges it into the collection, persists
// the result and queues a push to the sheet endpoint.
func (h *Handler) PutAsset(c *gin.Context) {
	var draft model.AssetRecord
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if draft.DeviceType != "" && !draft.DeviceType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown device type"})
		return
	}

	ctx := c.Request.Context()
	assets, err := h.store.LoadAssets(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	merged, err := reconcile.MergeOnSave(assets, draft)
	if err != nil {
		if errors.Is(err, reconcile.ErrMissingID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asset id is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.ReplaceAssets(ctx, merged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	mw.Invalidate(h.respCache)

	saved := reconcile.FindByPublicID(merged, draft.ID)
	if saved != nil {
		h.sync.EnqueuePush(*saved)
		c.JSON(http.StatusOK, gin.H{"asset": newAssetView(*saved)})
		return
	}
	c.Status(http.StatusOK)
}

// DeleteAsset removes an asset from the local collection. The sheet endpoint
// only accepts appends, so deletion is local.
func (h *Handler) DeleteAsset(c *gin.Context) {
	ctx := c.Request.Context()
	assets, err := h.store.LoadAssets(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	remaining, removed := reconcile.Delete(assets, c.Param("id"))
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}

	if err := h.store.ReplaceAssets(ctx, remaining); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	mw.Invalidate(h.respCache)
	c.Status(http.StatusNoContent)
}
