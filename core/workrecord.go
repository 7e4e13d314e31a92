package core

import (
	"errors"

	"checkin.net.au/checkin/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func FindWorkRecordByID(db *gorm.DB, id string) (*WorkRecord, error) {
	var record WorkRecord
	result := db.First(&record, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &record, nil
}

// CreateWorkRecord backfills a past session for an employee, e.g. when a
// kiosk was offline. The record is always created closed; open sessions only
// ever come from the toggle so the single-open-session invariant stays with
// one owner.
func CreateWorkRecord(db *gorm.DB, emp *Employee, checkInAt, checkOutAt int64) (*WorkRecord, error) {
	if checkOutAt < checkInAt {
		return nil, ErrInvalidRange
	}

	worked := utils.MinutesBetween(checkInAt, checkOutAt)
	record := WorkRecord{
		ID:                 uuid.NewString(),
		EmployeeID:         emp.ID,
		EmployeeName:       emp.Name,
		EmployeeIdentifier: emp.Identifier,
		LocationID:         emp.LocationID,
		CheckInAt:          checkInAt,
		CheckOutAt:         &checkOutAt,
		WorkedTime:         &worked,
		IsOpen:             false,
		OpenDate:           utils.LocalOpenDate(checkInAt),
	}

	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func FindWorkRecordsByEmployee(db *gorm.DB, employeeID int64, fromMs, toMs int64) ([]WorkRecord, error) {
	var records []WorkRecord
	err := db.Where("employee_id = ? AND check_in_at BETWEEN ? AND ?", employeeID, fromMs, toMs).
		Order("check_in_at").
		Find(&records).Error
	return records, err
}

func FindWorkRecordsByLocation(db *gorm.DB, locationID string, fromMs, toMs int64) ([]WorkRecord, error) {
	var records []WorkRecord
	err := db.Where("location_id = ? AND check_in_at BETWEEN ? AND ?", locationID, fromMs, toMs).
		Order("check_in_at").
		Find(&records).Error
	return records, err
}

// DeleteWorkRecord removes a session. If the session is still open the
// employee's pointer to it is cleared in the same transaction, so the delete
// cannot leave a dangling reference.
func DeleteWorkRecord(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Employee{}).
			Where("current_work_record_id = ?", id).
			Update("current_work_record_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&WorkRecord{}, "id = ?", id).Error
	})
}
