package core

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// A fresh connection sees a fresh :memory: database, so pin the pool to
	// a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedLocation(t *testing.T, db *gorm.DB, name string) *Location {
	t.Helper()

	loc, err := CreateLocation(db, name)
	if err != nil {
		t.Fatalf("failed to seed location: %v", err)
	}
	return loc
}

func seedEmployee(t *testing.T, db *gorm.DB, id int64, name, identifier, locationID string) *Employee {
	t.Helper()

	emp := &Employee{ID: id, Name: name, Identifier: identifier, LocationID: locationID}
	if err := CreateEmployee(db, emp); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return emp
}

func reloadEmployee(t *testing.T, db *gorm.DB, id int64) *Employee {
	t.Helper()

	emp, err := FindEmployeeByID(db, id)
	if err != nil {
		t.Fatalf("failed to reload employee: %v", err)
	}
	if emp == nil {
		t.Fatalf("employee %d disappeared", id)
	}
	return emp
}

func countOpenRecords(t *testing.T, db *gorm.DB, employeeID int64) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&WorkRecord{}).
		Where("employee_id = ? AND check_out_at IS NULL", employeeID).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count open records: %v", err)
	}
	return count
}
