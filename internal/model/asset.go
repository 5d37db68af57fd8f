package model

import "time"

// DeviceType identifies the kind of tracked device. The type decides both
// the maintenance cadence and which checklist applies.
type DeviceType string

const (
	DeviceComputer DeviceType = "Computer"
	DevicePrinter  DeviceType = "Printer"
)

// Valid reports whether t is one of the recognized device types.
func (t DeviceType) Valid() bool {
	return t == DeviceComputer || t == DevicePrinter
}

// CadenceMonths returns the preventive-maintenance interval for the device
// type: 6 calendar months for computers, 2 for printers.
func (t DeviceType) CadenceMonths() int {
	if t == DevicePrinter {
		return 2
	}
	return 6
}

// MaintenanceStatus is the progress of the most recent maintenance visit.
type MaintenanceStatus string

const (
	StatusPending    MaintenanceStatus = "Pending"
	StatusInProgress MaintenanceStatus = "In Progress"
	StatusCompleted  MaintenanceStatus = "Completed"
)

// AssetRecord is one tracked device and its latest maintenance snapshot.
// There is exactly one mutable record per asset; the record is replaced in
// place on every save. Dates are kept as strings because both the spreadsheet
// endpoint and the persisted collection carry them as text; parsing happens
// at the display/derivation boundary and parse failures degrade to safe
// defaults instead of propagating.
type AssetRecord struct {
	ID                  string            `json:"id" gorm:"primaryKey;size:64"`
	LastMaintenanceDate string            `json:"lastMaintenanceDate" gorm:"size:64"`
	NextMaintenanceDate string            `json:"nextMaintenanceDate" gorm:"size:64"`
	Department          string            `json:"department" gorm:"size:128"`
	DeviceType          DeviceType        `json:"deviceType" gorm:"size:16;index"`
	AssignedUser        string            `json:"assignedUser" gorm:"size:128"`
	MaintenanceStatus   MaintenanceStatus `json:"maintenanceStatus" gorm:"size:16"`
	Checklist           string            `json:"checklist" gorm:"type:text"` // " | " delimited
	Hostname            string            `json:"hostname" gorm:"size:128"`
	LoginUsername       string            `json:"loginUsername" gorm:"size:128"`
	LoginPassword       string            `json:"loginPassword" gorm:"size:128"`
	ServerPassword      string            `json:"serverPassword" gorm:"size:128"`
	AntivirusName       string            `json:"antivirusName" gorm:"size:128"`
	DeviceCondition     string            `json:"deviceCondition" gorm:"size:128"`
	Technician          string            `json:"technician" gorm:"size:128"`
	ImageURI            string            `json:"imageUri" gorm:"type:text"`
	StartOfServiceDate  string            `json:"startOfServiceDate" gorm:"size:64"`
	WarrantyExpiryDate  string            `json:"warrantyExpiryDate" gorm:"size:64"`
	Notes               string            `json:"notes" gorm:"type:text"`
	AssetName           string            `json:"assetName" gorm:"size:128"`
	ModelSpec           string            `json:"modelSpec" gorm:"size:128"`
	SerialNumber        string            `json:"serialNumber" gorm:"size:128"`
	Location            string            `json:"location" gorm:"size:128"`
	CreatedAt           time.Time         `json:"-"`
	UpdatedAt           time.Time         `json:"-"`
}

// ChecklistItems splits the delimited checklist field into its entries.
func (r AssetRecord) ChecklistItems() []string {
	return SplitChecklist(r.Checklist)
}

// Setting is a single persisted key/value configuration entry. The only key
// in use today is SettingEndpointURL.
type Setting struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// SettingEndpointURL is the settings key holding the remote sync endpoint.
const SettingEndpointURL = "sheet_endpoint_url"
