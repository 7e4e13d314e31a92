package core

import (
	"fmt"
	"time"

	"checkin.net.au/checkin/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScanAction string

const (
	ActionCheckIn  ScanAction = "checkin"
	ActionCheckOut ScanAction = "checkout"
)

type EmployeeSummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	LocationID string `json:"locationId"`
}

// ScanResult is the outcome of one toggle. WorkRecord is set on check-in;
// WorkRecordID/CheckOutAt/WorkedTime are set on check-out.
type ScanResult struct {
	Action   ScanAction      `json:"action"`
	Employee EmployeeSummary `json:"employee"`

	WorkRecord *WorkRecord `json:"workRecord,omitempty"`

	WorkRecordID string `json:"workRecordId,omitempty"`
	CheckOutAt   *int64 `json:"checkOutAt,omitempty"`
	WorkedTime   *int64 `json:"workedTime,omitempty"`
}

func summarize(emp *Employee) EmployeeSummary {
	return EmployeeSummary{
		ID:         emp.ID,
		Name:       emp.Name,
		Identifier: emp.Identifier,
		LocationID: emp.LocationID,
	}
}

// ToggleScan resolves the scan input to an employee and performs a check-in
// or a check-out depending on whether the employee already has an open work
// record. The pair of writes per branch commits atomically; each one carries
// a predicate on the state observed above, so a concurrent toggle for the
// same employee makes the whole transaction fail with
// ErrConcurrentModification instead of producing a second open session. The
// loser is never retried here; the kiosk asks the employee to scan again.
func ToggleScan(db *gorm.DB, input string, now time.Time, cooldown time.Duration) (*ScanResult, error) {
	emp, err := ResolveEmployee(db, input)
	if err != nil {
		return nil, err
	}

	nowMs := now.UnixMilli()

	if emp.LastScanAt != nil {
		elapsed := nowMs - *emp.LastScanAt
		if elapsed < cooldown.Milliseconds() {
			return nil, &CooldownError{
				Remaining: time.Duration(cooldown.Milliseconds()-elapsed) * time.Millisecond,
			}
		}
	}

	if emp.CurrentWorkRecordID != nil {
		return checkOut(db, emp, nowMs)
	}
	return checkIn(db, emp, nowMs)
}

// checkIn opens a new work record and points the employee at it. The
// employee update is conditioned on no open record existing, which closes the
// race between two concurrent first scans.
func checkIn(db *gorm.DB, emp *Employee, nowMs int64) (*ScanResult, error) {
	record := WorkRecord{
		ID:                 uuid.NewString(),
		EmployeeID:         emp.ID,
		EmployeeName:       emp.Name,
		EmployeeIdentifier: emp.Identifier,
		LocationID:         emp.LocationID,
		CheckInAt:          nowMs,
		IsOpen:             true,
		OpenDate:           utils.LocalOpenDate(nowMs),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		res := tx.Model(&Employee{}).
			Where("id = ? AND current_work_record_id IS NULL", emp.ID).
			Updates(map[string]interface{}{
				"current_work_record_id": record.ID,
				"last_scan_at":           nowMs,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		Action:     ActionCheckIn,
		Employee:   summarize(emp),
		WorkRecord: &record,
	}, nil
}

// checkOut closes the employee's open work record. Both updates are
// conditioned on the state read outside the transaction still holding: the
// record must still be open and the employee must still point at it.
func checkOut(db *gorm.DB, emp *Employee, nowMs int64) (*ScanResult, error) {
	recordID := *emp.CurrentWorkRecordID

	record, err := FindWorkRecordByID(db, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// Core invariant violated by some earlier non-atomic write. Surface
		// it; auto-healing would hide the bug.
		return nil, fmt.Errorf("%w: employee %d -> %s", ErrInconsistentState, emp.ID, recordID)
	}

	worked := utils.MinutesBetween(record.CheckInAt, nowMs)

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&WorkRecord{}).
			Where("id = ? AND check_out_at IS NULL", recordID).
			Updates(map[string]interface{}{
				"check_out_at": nowMs,
				"worked_time":  worked,
				"is_open":      false,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}

		res = tx.Model(&Employee{}).
			Where("id = ? AND current_work_record_id = ?", emp.ID, recordID).
			Updates(map[string]interface{}{
				"current_work_record_id": nil,
				"last_scan_at":           nowMs,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		Action:       ActionCheckOut,
		Employee:     summarize(emp),
		WorkRecordID: recordID,
		CheckOutAt:   &nowMs,
		WorkedTime:   &worked,
	}, nil
}
