package core

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

func FindEmployeeByID(db *gorm.DB, id int64) (*Employee, error) {
	var emp Employee
	result := db.First(&emp, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &emp, nil
}

// FindEmployeeByIdentifier matches the badge code / username
// case-insensitively. First match by id wins if the identifier is somehow
// duplicated.
func FindEmployeeByIdentifier(db *gorm.DB, identifier string) (*Employee, error) {
	var emps []Employee
	err := db.Where("LOWER(identifier) = ?", strings.ToLower(identifier)).
		Order("id").
		Limit(1).
		Find(&emps).Error
	if err != nil {
		return nil, err
	}
	if len(emps) == 0 {
		return nil, nil
	}
	return &emps[0], nil
}

// ResolveEmployee maps free-form scan input to an employee. The identifier
// index is tried first; input made up entirely of digits falls back to a
// primary-key lookup. No side effects.
func ResolveEmployee(db *gorm.DB, input string) (*Employee, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidInput
	}

	emp, err := FindEmployeeByIdentifier(db, input)
	if err != nil {
		return nil, err
	}
	if emp != nil {
		return emp, nil
	}

	if digitsOnly.MatchString(input) {
		id, err := strconv.ParseInt(input, 10, 64)
		if err == nil {
			emp, err := FindEmployeeByID(db, id)
			if err != nil {
				return nil, err
			}
			if emp != nil {
				return emp, nil
			}
		}
	}

	return nil, ErrEmployeeNotFound
}

// CreateEmployee inserts an employee with a caller-assigned id. The
// identifier is checked for a case-insensitive clash first; like the location
// name check this is not atomic with the insert.
func CreateEmployee(db *gorm.DB, emp *Employee) error {
	emp.Identifier = strings.TrimSpace(emp.Identifier)
	if emp.Identifier == "" || strings.TrimSpace(emp.Name) == "" {
		return ErrInvalidInput
	}

	existing, err := FindEmployeeByIdentifier(db, emp.Identifier)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("identifier %q already in use by employee %d", emp.Identifier, existing.ID)
	}

	return db.Create(emp).Error
}

func ListEmployeesByLocation(db *gorm.DB, locationID string) ([]Employee, error) {
	var emps []Employee
	err := db.Where("location_id = ?", locationID).Order("id").Find(&emps).Error
	return emps, err
}

// DeleteEmployee removes an employee and all their work records in one
// transaction, so a failure cannot leave orphaned records behind.
func DeleteEmployee(db *gorm.DB, id int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&WorkRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Employee{}, id).Error
	})
}
