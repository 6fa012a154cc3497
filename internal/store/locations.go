package store

import (
	"larder/internal/models"

	"github.com/jinzhu/gorm"
)

// CreateLocation inserts a new location master.
func (s *Store) CreateLocation(loc *models.Location) error {
	return s.db.Create(loc).Error
}

// GetOrCreateLocation returns the location with the given name, creating it
// if it does not exist. Backs the free-text "other location" entry flow.
func (s *Store) GetOrCreateLocation(name string) (*models.Location, error) {
	var loc models.Location
	err := s.db.Where("name = ?", name).First(&loc).Error
	if err == nil {
		return &loc, nil
	}
	if translate(err) != ErrNotFound {
		return nil, err
	}
	loc = models.Location{Name: name}
	if err := s.db.Create(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// ListLocations returns all location masters ordered by name.
func (s *Store) ListLocations() ([]models.Location, error) {
	var locs []models.Location
	if err := s.db.Order("name asc").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

// DeleteLocation removes a location master. Deletion is rejected with
// ErrLocationInUse while any ingredient still references it (protect);
// template default locations are nulled out instead (set-null).
func (s *Store) DeleteLocation(id uint) error {
	var loc models.Location
	if err := s.db.First(&loc, id).Error; err != nil {
		return translate(err)
	}

	var refs int64
	if err := s.db.Model(&models.Ingredient{}).Where("location_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrLocationInUse
	}

	return s.Transaction(func(tx *Store) error {
		err := tx.db.Model(&models.FixedIngredient{}).
			Where("default_location_id = ?", id).
			Update("default_location_id", gorm.Expr("NULL")).Error
		if err != nil {
			return err
		}
		return tx.db.Delete(&loc).Error
	})
}
