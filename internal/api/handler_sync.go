package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pm-dashboard-backend/internal/mw"
	"pm-dashboard-backend/internal/syncer"
)

// PostSync pulls the sheet endpoint immediately and replaces the local
// collection.
func (h *Handler) PostSync(c *gin.Context) {
	err := h.sync.SyncOnce(c.Request.Context())
	switch {
	case err == nil:
		mw.Invalidate(h.respCache)
		c.JSON(http.StatusOK, h.sync.Status())
	case errors.Is(err, syncer.ErrSyncInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, syncer.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// GetSyncStatus reports connectivity and the transient status message.
func (h *Handler) GetSyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.sync.Status())
}
