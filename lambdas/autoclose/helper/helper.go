package helper

import (
	"fmt"
	"time"

	"checkin.net.au/checkin/core"
	"checkin.net.au/checkin/utils"
	"gorm.io/gorm"
)

type CloseStats struct {
	Examined  int `json:"examined"`
	Closed    int `json:"closed"`
	Conflicts int `json:"conflicts"`
}

// FindStaleOpenRecords returns open sessions whose check-in is older than the
// cutoff instant.
func FindStaleOpenRecords(db *gorm.DB, cutoffMs int64) ([]core.WorkRecord, error) {
	var records []core.WorkRecord
	err := db.Where("is_open = ? AND check_in_at < ?", true, cutoffMs).
		Order("check_in_at").
		Find(&records).Error
	return records, err
}

// CloseStale force-closes one stale session under the same conditional-write
// discipline as the toggle: the record update only lands if the session is
// still open, and the employee pointer is only cleared if it still references
// this record. LastScanAt is left alone; an auto-close is not a scan and must
// not push the employee into a cooldown.
func CloseStale(db *gorm.DB, record *core.WorkRecord, nowMs int64) error {
	worked := utils.MinutesBetween(record.CheckInAt, nowMs)

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&core.WorkRecord{}).
			Where("id = ? AND check_out_at IS NULL", record.ID).
			Updates(map[string]interface{}{
				"check_out_at":      nowMs,
				"worked_time":       worked,
				"is_open":           false,
				"auto_closed":       true,
				"auto_closed_fixed": false,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The employee checked out (or another closer run got here)
			// between our query and this write.
			return core.ErrConcurrentModification
		}

		// The employee may have been deleted since; clearing nothing is fine.
		return tx.Model(&core.Employee{}).
			Where("id = ? AND current_work_record_id = ?", record.EmployeeID, record.ID).
			Update("current_work_record_id", nil).Error
	})
}

// Run sweeps all sessions left open longer than threshold and force-closes
// them. Conflicts are counted, not retried; the next scheduled run picks up
// anything still stale.
func Run(db *gorm.DB, now time.Time, threshold time.Duration) (CloseStats, error) {
	cutoffMs := now.Add(-threshold).UnixMilli()

	stale, err := FindStaleOpenRecords(db, cutoffMs)
	if err != nil {
		return CloseStats{}, fmt.Errorf("failed to find stale sessions: %w", err)
	}

	stats := CloseStats{Examined: len(stale)}
	nowMs := now.UnixMilli()

	for i := range stale {
		if err := CloseStale(db, &stale[i], nowMs); err != nil {
			if err == core.ErrConcurrentModification {
				stats.Conflicts++
				continue
			}
			return stats, fmt.Errorf("failed to close session %s: %w", stale[i].ID, err)
		}
		stats.Closed++
	}

	return stats, nil
}
