package syncer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"pm-dashboard-backend/internal/model"
)

// The spreadsheet row layout, columns A..W. The same order is used for both
// decoding fetched rows and encoding pushed rows.
const (
	colID = iota
	colLastDate
	colNextDate
	colDepartment
	colDeviceType
	colAssignedUser
	colStatus
	colChecklist
	colHostname
	colLoginUsername
	colLoginPassword
	colServerPassword
	colAntivirus
	colDeviceCondition
	colTechnician
	colImageURI
	colStartDate
	colWarrantyExpiry
	colNotes
	colAssetName
	colModelSpec
	colSerialNumber
	colLocation
	columnCount
)

// encodeRow flattens a record into the ordered value array the endpoint's
// append/update write expects.
func encodeRow(r model.AssetRecord) []string {
	row := make([]string, columnCount)
	row[colID] = r.ID
	row[colLastDate] = r.LastMaintenanceDate
	row[colNextDate] = r.NextMaintenanceDate
	row[colDepartment] = r.Department
	row[colDeviceType] = string(r.DeviceType)
	row[colAssignedUser] = r.AssignedUser
	row[colStatus] = string(r.MaintenanceStatus)
	row[colChecklist] = r.Checklist
	row[colHostname] = r.Hostname
	row[colLoginUsername] = r.LoginUsername
	row[colLoginPassword] = r.LoginPassword
	row[colServerPassword] = r.ServerPassword
	row[colAntivirus] = r.AntivirusName
	row[colDeviceCondition] = r.DeviceCondition
	row[colTechnician] = r.Technician
	row[colImageURI] = r.ImageURI
	row[colStartDate] = r.StartOfServiceDate
	row[colWarrantyExpiry] = r.WarrantyExpiryDate
	row[colNotes] = r.Notes
	row[colAssetName] = r.AssetName
	row[colModelSpec] = r.ModelSpec
	row[colSerialNumber] = r.SerialNumber
	row[colLocation] = r.Location
	return row
}

// decodePositional maps one array-shaped row onto a record. Short rows are
// fine; missing columns stay zero. Reports ok=false when the id cell is
// empty, such rows are dropped.
func decodePositional(raw json.RawMessage) (model.AssetRecord, bool) {
	var cells []any
	if err := json.Unmarshal(raw, &cells); err != nil {
		return model.AssetRecord{}, false
	}

	cell := func(i int) string {
		if i >= len(cells) {
			return ""
		}
		return cellString(cells[i])
	}

	id := strings.TrimSpace(cell(colID))
	if id == "" {
		return model.AssetRecord{}, false
	}

	return model.AssetRecord{
		ID:                  id,
		LastMaintenanceDate: cell(colLastDate),
		NextMaintenanceDate: cell(colNextDate),
		Department:          cell(colDepartment),
		DeviceType:          model.DeviceType(cell(colDeviceType)),
		AssignedUser:        cell(colAssignedUser),
		MaintenanceStatus:   model.MaintenanceStatus(cell(colStatus)),
		Checklist:           cell(colChecklist),
		Hostname:            cell(colHostname),
		LoginUsername:       cell(colLoginUsername),
		LoginPassword:       cell(colLoginPassword),
		ServerPassword:      cell(colServerPassword),
		AntivirusName:       cell(colAntivirus),
		DeviceCondition:     cell(colDeviceCondition),
		Technician:          cell(colTechnician),
		ImageURI:            cell(colImageURI),
		StartOfServiceDate:  cell(colStartDate),
		WarrantyExpiryDate:  cell(colWarrantyExpiry),
		Notes:               cell(colNotes),
		AssetName:           cell(colAssetName),
		ModelSpec:           cell(colModelSpec),
		SerialNumber:        cell(colSerialNumber),
		Location:            cell(colLocation),
	}, true
}

// decodeNamed maps one object-shaped row (named fields matching the record's
// JSON tags) onto a record.
func decodeNamed(raw json.RawMessage) (model.AssetRecord, bool) {
	var rec model.AssetRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.AssetRecord{}, false
	}
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		return model.AssetRecord{}, false
	}
	return rec, true
}

// cellString renders a JSON cell value as its spreadsheet string form.
// Integral numbers must not grow a ".0" suffix or numeric asset IDs would
// stop matching.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
