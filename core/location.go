package core

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateLocation(db *gorm.DB, name string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	loc := Location{ID: uuid.NewString(), Name: name}
	if err := db.Create(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func FindLocationByID(db *gorm.DB, id string) (*Location, error) {
	var loc Location
	result := db.First(&loc, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &loc, nil
}

func ListLocations(db *gorm.DB) ([]Location, error) {
	var locs []Location
	err := db.Order("name").Find(&locs).Error
	return locs, err
}

// DeleteLocation removes a location, its employees and their work records as
// one transaction. A partial cascade can otherwise strand employees whose
// location no longer exists.
func DeleteLocation(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&WorkRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", id).Delete(&Employee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Location{}, "id = ?", id).Error
	})
}
