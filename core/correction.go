package core

import (
	"time"

	"checkin.net.au/checkin/utils"
	"gorm.io/gorm"
)

const RecentAutoClosureWindowDays = 14

// ListAutoClosed returns the sessions at a location on an open-date that were
// force-closed by the stale-session closer and still need operator review.
func ListAutoClosed(db *gorm.DB, locationID, openDate string) ([]WorkRecord, error) {
	var records []WorkRecord
	err := db.Where("location_id = ? AND open_date = ? AND auto_closed = ? AND auto_closed_fixed = ?",
		locationID, openDate, true, false).
		Order("check_in_at").
		Find(&records).Error
	return records, err
}

// HasRecentAutoClosure reports whether any of the employee's sessions in the
// trailing window was auto-closed. Advisory only; it never blocks a scan.
func HasRecentAutoClosure(db *gorm.DB, employeeID int64, now time.Time, windowDays int) (bool, error) {
	fromMs := now.AddDate(0, 0, -windowDays).UnixMilli()

	var count int64
	err := db.Model(&WorkRecord{}).
		Where("employee_id = ? AND auto_closed = ? AND check_out_at IS NOT NULL AND check_in_at >= ?",
			employeeID, true, fromMs).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FixTimes rewrites the recorded times of an auto-closed session after
// operator review. The session must already be closed; correcting an open
// session would bypass the toggle's invariant.
func FixTimes(db *gorm.DB, id string, newCheckInAt, newCheckOutAt int64, now time.Time) (*WorkRecord, error) {
	if newCheckOutAt <= newCheckInAt {
		return nil, ErrInvalidRange
	}

	record, err := FindWorkRecordByID(db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if record.IsOpen {
		return nil, ErrSessionStillOpen
	}

	worked := utils.MinutesBetween(newCheckInAt, newCheckOutAt)
	nowMs := now.UnixMilli()

	err = db.Model(&WorkRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"check_in_at":       newCheckInAt,
			"check_out_at":      newCheckOutAt,
			"worked_time":       worked,
			"open_date":         utils.LocalOpenDate(newCheckInAt),
			"is_open":           false,
			"auto_closed_fixed": true,
			"fixed_at":          nowMs,
		}).Error
	if err != nil {
		return nil, err
	}

	return FindWorkRecordByID(db, id)
}
