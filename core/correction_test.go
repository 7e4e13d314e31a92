package core

import (
	"testing"
	"time"

	"checkin.net.au/checkin/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// seedAutoClosed creates a closed record flagged by the stale-session closer.
func seedAutoClosed(t *testing.T, db *gorm.DB, emp *Employee, checkInAt, checkOutAt int64) *WorkRecord {
	t.Helper()

	record, err := CreateWorkRecord(db, emp, checkInAt, checkOutAt)
	if err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	err = db.Model(&WorkRecord{}).Where("id = ?", record.ID).
		Update("auto_closed", true).Error
	if err != nil {
		t.Fatalf("failed to flag record: %v", err)
	}
	record.AutoClosed = true
	return record
}

func TestFixTimes(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	emp := seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)

	checkIn := time.Date(2023, 8, 21, 9, 0, 0, 0, utils.BrisbaneTZ).UnixMilli()
	autoOut := checkIn + 16*60*60*1000 // closer fired 16h later
	record := seedAutoClosed(t, db, emp, checkIn, autoOut)

	now := time.Date(2023, 8, 22, 10, 0, 0, 0, utils.BrisbaneTZ)

	// Operator corrects the session to 9h on the next calendar day.
	newIn := time.Date(2023, 8, 22, 8, 0, 0, 0, utils.BrisbaneTZ).UnixMilli()
	newOut := time.Date(2023, 8, 22, 17, 0, 0, 0, utils.BrisbaneTZ).UnixMilli()

	fixed, err := FixTimes(db, record.ID, newIn, newOut, now)
	assert.NoError(t, err)
	assert.Equal(t, newIn, fixed.CheckInAt)
	assert.Equal(t, newOut, *fixed.CheckOutAt)
	assert.Equal(t, int64(9*60), *fixed.WorkedTime)
	assert.Equal(t, "2023-08-22", fixed.OpenDate)
	assert.False(t, fixed.IsOpen)
	assert.True(t, fixed.AutoClosedFixed)
	assert.Equal(t, now.UnixMilli(), *fixed.FixedAt)
}

func TestFixTimesInvalidRangeLeavesRecordUnmodified(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	emp := seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)

	record := seedAutoClosed(t, db, emp, 1_000_000, 2_000_000)

	_, err := FixTimes(db, record.ID, 5_000_000, 5_000_000, time.Now())
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = FixTimes(db, record.ID, 5_000_000, 4_000_000, time.Now())
	assert.ErrorIs(t, err, ErrInvalidRange)

	unchanged, err := FindWorkRecordByID(db, record.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1_000_000), unchanged.CheckInAt)
	assert.Equal(t, int64(2_000_000), *unchanged.CheckOutAt)
	assert.False(t, unchanged.AutoClosedFixed)
	assert.Nil(t, unchanged.FixedAt)
}

func TestFixTimesRejectsOpenSession(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)

	res, err := ToggleScan(db, "alice", time.Now(), time.Minute)
	assert.NoError(t, err)

	_, err = FixTimes(db, res.WorkRecord.ID, 1_000_000, 2_000_000, time.Now())
	assert.ErrorIs(t, err, ErrSessionStillOpen)
}

func TestFixTimesUnknownRecord(t *testing.T) {
	db := openTestDB(t)

	_, err := FixTimes(db, "no-such-record", 1_000_000, 2_000_000, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAutoClosed(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	other := seedLocation(t, db, "Depot")
	emp := seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)
	empOther := seedEmployee(t, db, 2, "Bob Jones", "bob", other.ID)

	dayStart := time.Date(2023, 8, 21, 8, 0, 0, 0, utils.BrisbaneTZ).UnixMilli()
	hour := int64(60 * 60 * 1000)

	pending := seedAutoClosed(t, db, emp, dayStart, dayStart+hour)

	// Already fixed: excluded.
	fixed := seedAutoClosed(t, db, emp, dayStart+2*hour, dayStart+3*hour)
	_, err := FixTimes(db, fixed.ID, dayStart+2*hour, dayStart+3*hour+1, time.Now())
	assert.NoError(t, err)

	// Regular closed record: excluded.
	_, err = CreateWorkRecord(db, emp, dayStart+4*hour, dayStart+5*hour)
	assert.NoError(t, err)

	// Other location: excluded.
	seedAutoClosed(t, db, empOther, dayStart, dayStart+hour)

	records, err := ListAutoClosed(db, loc.ID, "2023-08-21")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, pending.ID, records[0].ID)
}

func TestHasRecentAutoClosure(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	emp := seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)
	clean := seedEmployee(t, db, 2, "Bob Jones", "bob", loc.ID)

	now := time.Date(2023, 8, 21, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -3).UnixMilli()
	ancient := now.AddDate(0, 0, -30).UnixMilli()

	seedAutoClosed(t, db, emp, recent, recent+60*60*1000)
	seedAutoClosed(t, db, clean, ancient, ancient+60*60*1000)

	got, err := HasRecentAutoClosure(db, emp.ID, now, RecentAutoClosureWindowDays)
	assert.NoError(t, err)
	assert.True(t, got)

	// Only an out-of-window closure: advisory flag stays off.
	got, err = HasRecentAutoClosure(db, clean.ID, now, RecentAutoClosureWindowDays)
	assert.NoError(t, err)
	assert.False(t, got)
}
