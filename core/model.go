package core

import "time"

// All instants on the wire and in the store are epoch milliseconds. OpenDate
// is the yyyy-MM-dd shift date derived from CheckInAt in the reference
// timezone (see utils.LocalOpenDate).

type Location struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Location) TableName() string {
	return "locations"
}

type Employee struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	Identifier string `gorm:"size:255;not null;index" json:"identifier"`
	LocationID string `gorm:"size:36;not null;index" json:"locationId"`

	// CurrentWorkRecordID is a weak reference to the one open work record for
	// this employee, or nil when checked out. The record itself is owned by
	// the work_records table; a pointer to a missing record is an invariant
	// violation and is surfaced as ErrInconsistentState.
	CurrentWorkRecordID *string `gorm:"size:36" json:"currentWorkRecordId,omitempty"`

	// LastScanAt is the epoch-ms instant of the last accepted scan, used to
	// enforce the cooldown window.
	LastScanAt *int64 `json:"lastScanAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}

// WorkRecord is a single attendance session. Once closed it is immutable
// except through FixTimes, which is restricted to auto-closed sessions.
type WorkRecord struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Employee snapshot taken at check-in; not re-synced if the employee
	// record changes later.
	EmployeeID         int64  `gorm:"not null;index:idx_work_records_employee_time,priority:1" json:"employeeId"`
	EmployeeName       string `gorm:"size:255" json:"employeeName"`
	EmployeeIdentifier string `gorm:"size:255" json:"employeeIdentifier"`
	LocationID         string `gorm:"size:36;index:idx_work_records_location_time,priority:1" json:"locationId"`

	CheckInAt  int64  `gorm:"not null;index:idx_work_records_employee_time,priority:2;index:idx_work_records_location_time,priority:2" json:"checkInAt"`
	CheckOutAt *int64 `json:"checkOutAt,omitempty"`
	WorkedTime *int64 `json:"workedTime,omitempty"` // whole minutes

	// IsOpen mirrors "CheckOutAt is nil" so open sessions can be found with
	// an indexed query.
	IsOpen   bool   `gorm:"not null;index" json:"isOpen"`
	OpenDate string `gorm:"size:10;not null;index" json:"openDate"`

	// AutoClosed is set by the stale-session closer, never by the toggle
	// engine. AutoClosedFixed flips once an operator has corrected the times.
	AutoClosed      bool   `gorm:"not null" json:"autoClosed"`
	AutoClosedFixed bool   `gorm:"not null" json:"autoClosedFixed"`
	FixedAt         *int64 `json:"fixedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (WorkRecord) TableName() string {
	return "work_records"
}
