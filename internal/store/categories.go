package store

import (
	"larder/internal/models"

	"github.com/jinzhu/gorm"
)

// CreateCategory inserts a new category master.
func (s *Store) CreateCategory(cat *models.Category) error {
	return s.db.Create(cat).Error
}

// ListCategories returns all category masters ordered by name.
func (s *Store) ListCategories() ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.Order("name asc").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// DeleteCategory removes a category master, nulling the references held by
// ingredients and templates (set-null policy).
func (s *Store) DeleteCategory(id uint) error {
	var cat models.Category
	if err := s.db.First(&cat, id).Error; err != nil {
		return translate(err)
	}

	return s.Transaction(func(tx *Store) error {
		err := tx.db.Model(&models.Ingredient{}).
			Where("category_id = ?", id).
			Update("category_id", gorm.Expr("NULL")).Error
		if err != nil {
			return err
		}
		err = tx.db.Model(&models.FixedIngredient{}).
			Where("category_id = ?", id).
			Update("category_id", gorm.Expr("NULL")).Error
		if err != nil {
			return err
		}
		return tx.db.Delete(&cat).Error
	})
}
