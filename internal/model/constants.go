package model

import "strings"

// ChecklistSeparator joins completed checklist items into the single
// delimited column the spreadsheet endpoint expects.
const ChecklistSeparator = " | "

// Departments is the enumerated department list offered by the dashboard.
// The last entry doubles as the free-text escape hatch.
var Departments = []string{
	"Maintenance / ซ่อมบำรุง",
	"Safety / จป.",
	"Packing / บรรจุ",
	"QA/QC",
	"Plating / ชุบ",
	"Store Inventory / คลังสินค้า",
	"Wax setting / เซ็ตเทียน",
	"Wax / ฉีดเทียน",
	"Polishing / ขัด",
	"Factory Manager / ผจก.โรงงาน",
	"Executive Secretary / เลขาฯ",
	"Accounting / บัญชี",
	"Import Export / นำเข้า-ส่งออก",
	"Purchasing / จัดซื้อ",
	"IT / ไอที",
	"HR Sup.",
	"HR admin",
	"Others / อื่นๆ",
}

// ComputerChecklist is the standard activity set for computer maintenance.
var ComputerChecklist = []string{
	"1. Clean Screen, Keyboard, Mouse / เช็ดจอ, คีย์บอร์ด, เมาส์",
	"2. Windows & Office Check / ตรวจเช็คระบบ Windows และ Office",
	"3. Antivirus Scan / ตรวจเช็คแอนตี้ไวรัส",
	"4. Disk & RAM Check / ตรวจเช็ค Disk และ RAM",
	"5. Data Backup / สำรองข้อมูลสำคัญ",
	"6. Network & Cable Check / ตรวจเช็คระบบเครือข่ายและสายสัญญาณ",
	"7. Disk Cleanup & Cache / ลบไฟล์ขยะและแคช",
}

// PrinterChecklist is the standard activity set for printer maintenance.
var PrinterChecklist = []string{
	"1. Clean Exterior & Interior / ทำความสะอาดเครื่อง",
	"2. Roller & Paper Feed Check / ตรวจเช็คชุดดึงกระดาษ",
	"3. Print Head & Ink/Toner Check / ตรวจเช็คหัวพิมพ์",
	"4. Print Quality Test / ทดสอบคุณภาพการพิมพ์",
	"5. Driver & Firmware Update / อัปเดตซอฟต์แวร์",
	"6. Network/USB Connection / ตรวจเช็คการเชื่อมต่อ",
	"7. Consumables Level Check / ตรวจเช็ควัสดุสิ้นเปลือง",
}

// ChecklistFor returns the standard checklist for the given device type.
func ChecklistFor(t DeviceType) []string {
	if t == DevicePrinter {
		return PrinterChecklist
	}
	return ComputerChecklist
}

// SplitChecklist splits a delimited checklist column, dropping empties.
func SplitChecklist(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ChecklistSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JoinChecklist is the inverse of SplitChecklist.
func JoinChecklist(items []string) string {
	return strings.Join(items, ChecklistSeparator)
}

// SeedAssets returns the default collection installed when the local store is
// empty or unreadable. Matches the dashboard's original sample record.
func SeedAssets() []AssetRecord {
	return []AssetRecord{
		{
			ID:                  "PM-2568-001",
			LastMaintenanceDate: "2025-01-15T10:00:00.000Z",
			NextMaintenanceDate: "2025-07-15T10:00:00.000Z",
			Department:          "IT / ไอที",
			DeviceType:          DeviceComputer,
			AssignedUser:        "Admin System",
			Technician:          "Staff IT 01",
			MaintenanceStatus:   StatusCompleted,
			Checklist:           JoinChecklist(ComputerChecklist[:5]),
			Hostname:            "IT-SRV-01",
			LoginUsername:       "administrator",
			LoginPassword:       "securepass123",
			AntivirusName:       "Kaspersky Endpoint",
			AssetName:           "Core Server v1",
			ModelSpec:           "Dell PowerEdge T440",
			Location:            "Server Room",
		},
	}
}
