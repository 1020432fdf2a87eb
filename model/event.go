package model

import "time"

const (
	KindEntry = "Entry"
	KindExit  = "Exit"

	OriginLive             = "live"
	OriginManualAdjustment = "manual_adjustment"
	OriginImport           = "import"
)

// AttendanceEvent is one recorded clock action. Rows are append-only:
// corrections are new rows, never edits.
type AttendanceEvent struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID string `gorm:"column:employee_id;not null;index:idx_employee_local,priority:1" json:"employee_id"`
	// Local wall-clock instant, 'YYYY-MM-DD HH:MM:SS'. Authoritative for display.
	LocalTimestamp string `gorm:"column:local_timestamp;not null;index:idx_employee_local,priority:2" json:"local_timestamp"`
	// Same instant in UTC, kept for audit and cross-timezone comparison.
	UTCTimestamp string `gorm:"column:utc_timestamp;not null" json:"utc_timestamp"`
	Kind         string `gorm:"column:kind;not null;check:chk_kind,kind IN ('Entry','Exit')" json:"kind"`
	Note         string `gorm:"column:note" json:"note"`
	Origin       string `gorm:"column:origin;default:live" json:"origin"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"created_at"`
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}

func ValidKind(kind string) bool {
	return kind == KindEntry || kind == KindExit
}
