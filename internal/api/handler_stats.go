package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/pmdate"
)

type deptStat struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type trendPoint struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GetStats summarises the collection for one module. The module query
// parameter selects computer or printer records; computer is the default.
func (h *Handler) GetStats(c *gin.Context) {
	device := model.DeviceComputer
	switch c.DefaultQuery("module", "computer") {
	case "computer":
	case "printer":
		device = model.DevicePrinter
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "module must be computer or printer"})
		return
	}

	assets, err := h.store.LoadAssets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var total, completed int
	deptCounts := make(map[string]int)
	dayCounts := make(map[string]int)
	for _, rec := range assets {
		if rec.DeviceType != device {
			continue
		}
		total++
		if rec.MaintenanceStatus == model.StatusCompleted {
			completed++
		}
		if rec.Department != "" {
			deptCounts[rec.Department]++
		}
		if day := pmdate.CanonicalDate(rec.LastMaintenanceDate); day != "" {
			dayCounts[day]++
		}
	}

	depts := make([]deptStat, 0, len(deptCounts))
	for dept, n := range deptCounts {
		depts = append(depts, deptStat{Department: dept, Count: n})
	}
	sort.Slice(depts, func(i, j int) bool {
		if depts[i].Count != depts[j].Count {
			return depts[i].Count > depts[j].Count
		}
		return depts[i].Department < depts[j].Department
	})

	trend := make([]trendPoint, 0, len(dayCounts))
	for day, n := range dayCounts {
		trend = append(trend, trendPoint{Date: day, Label: pmdate.DisplayDate(day), Count: n})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"module":         string(device),
		"total":          total,
		"completed":      completed,
		"completionRate": rate,
		"departments":    depts,
		"dailyTrend":     trend,
	})
}
