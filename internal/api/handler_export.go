package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx/v3"

	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/pmdate"
)

var exportHeader = []string{
	"Asset ID", "Asset Name", "Device Type", "Department", "Assigned User",
	"Status", "Last PM", "Next PM", "Checklist", "Hostname", "Technician",
	"Device Condition", "Model / Spec", "Serial Number", "Location", "Notes",
}

func exportRow(rec model.AssetRecord) []string {
	return []string{
		rec.ID, rec.AssetName, string(rec.DeviceType), rec.Department,
		rec.AssignedUser, string(rec.MaintenanceStatus),
		pmdate.DisplayDate(rec.LastMaintenanceDate),
		pmdate.DisplayDate(rec.NextMaintenanceDate),
		rec.Checklist, rec.Hostname, rec.Technician, rec.DeviceCondition,
		rec.ModelSpec, rec.SerialNumber, rec.Location, rec.Notes,
	}
}

// GetExport streams the collection as an Excel workbook. Credentials are
// never exported.
func (h *Handler) GetExport(c *gin.Context) {
	assets, err := h.store.LoadAssets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("PM Records")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	header := sheet.AddRow()
	for _, title := range exportHeader {
		header.AddCell().Value = title
	}
	for _, rec := range assets {
		row := sheet.AddRow()
		for _, v := range exportRow(rec) {
			row.AddCell().Value = v
		}
	}

	filename := fmt.Sprintf("pm-records-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		c.Error(err)
	}
}
