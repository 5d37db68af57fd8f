package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pm-dashboard-backend/internal/gate"
	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/mw"
	"pm-dashboard-backend/internal/pmdate"
	"pm-dashboard-backend/internal/reconcile"
)

// assetView is the public payload for a single asset. Dates carry both the
// stored value and the DD-MM-YYYY display form so clients never re-derive
// formatting.
type assetView struct {
	model.AssetRecord
	LastMaintenanceDisplay string   `json:"lastMaintenanceDateDisplay"`
	NextMaintenanceDisplay string   `json:"nextMaintenanceDateDisplay"`
	Checklist              []string `json:"checklistItems"`
}

func newAssetView(rec model.AssetRecord) assetView {
	return assetView{
		AssetRecord:            rec,
		LastMaintenanceDisplay: pmdate.DisplayDate(rec.LastMaintenanceDate),
		NextMaintenanceDisplay: pmdate.DisplayDate(rec.NextMaintenanceDate),
		Checklist:              rec.ChecklistItems(),
	}
}

// GetRoot routes the entry URL. A view= query parameter selects the public
// single-asset view; without it the caller gets the dashboard summary. A
// url= parameter additionally seeds the sheet endpoint and kicks off a
// background refetch, so a shared link is self-configuring on a fresh
// install.
func (h *Handler) GetRoot(c *gin.Context) {
	ctx := c.Request.Context()

	if seed := c.Query("url"); seed != "" {
		if err := h.store.SetEndpointURL(ctx, seed); err != nil {
			log.Printf("failed to persist seeded endpoint url: %v", err)
		} else {
			h.refetchInBackground()
		}
	}

	viewID := c.Query("view")
	if viewID == "" {
		h.dashboardView(c)
		return
	}

	assets, err := h.store.LoadAssets(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rec := reconcile.FindByPublicID(assets, viewID)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"mode": "asset", "error": "asset not found"})
		return
	}

	session := mw.SessionID(c)
	unlocked := h.gate.Unlocked(session)
	shown := *rec
	if !unlocked {
		shown = gate.Mask(shown)
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":     "asset",
		"asset":    newAssetView(shown),
		"unlocked": unlocked,
		"pinError": h.gate.HasError(session),
	})
}

func (h *Handler) dashboardView(c *gin.Context) {
	assets, err := h.store.LoadAssets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var computers, printers int
	for _, rec := range assets {
		switch rec.DeviceType {
		case model.DeviceComputer:
			computers++
		case model.DevicePrinter:
			printers++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":      "dashboard",
		"computers": computers,
		"printers":  printers,
		"sync":      h.sync.Status(),
		"admin":     h.isAdmin(mw.SessionID(c)),
	})
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

// PostUnlock submits a disclosure PIN for the caller's session. An empty PIN
// only clears a previous failure.
func (h *Handler) PostUnlock(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := mw.SessionID(c)
	if req.PIN == "" {
		h.gate.ClearError(session)
	} else {
		h.gate.Submit(session, req.PIN)
	}

	c.JSON(http.StatusOK, gin.H{
		"unlocked": h.gate.Unlocked(session),
		"pinError": h.gate.HasError(session),
	})
}

// refetchInBackground pulls the sheet without tying the fetch to the
// caller's request lifetime.
func (h *Handler) refetchInBackground() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.cfg.Sync.Timeout)
		defer cancel()
		if err := h.sync.SyncOnce(ctx); err != nil {
			log.Printf("background refetch failed: %v", err)
			return
		}
		mw.Invalidate(h.respCache)
	}()
}
