package store

import "larder/internal/models"

// CreateFixedIngredient inserts a new template.
func (s *Store) CreateFixedIngredient(f *models.FixedIngredient) error {
	return s.db.Create(f).Error
}

// GetFixedIngredient fetches one template with its masters loaded.
func (s *Store) GetFixedIngredient(id uint) (*models.FixedIngredient, error) {
	var f models.FixedIngredient
	err := s.db.Preload("Category").Preload("DefaultLocation").First(&f, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// ListFixedIngredients returns all templates ordered by name.
func (s *Store) ListFixedIngredients() ([]models.FixedIngredient, error) {
	var fs []models.FixedIngredient
	err := s.db.Preload("Category").Preload("DefaultLocation").
		Order("name asc").Find(&fs).Error
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// ListQuickAddIngredients returns the templates flagged for one-tap
// registration, ordered by name.
func (s *Store) ListQuickAddIngredients() ([]models.FixedIngredient, error) {
	var fs []models.FixedIngredient
	err := s.db.Preload("Category").Preload("DefaultLocation").
		Where("is_quick_add = ?", true).
		Order("name asc").Find(&fs).Error
	if err != nil {
		return nil, err
	}
	return fs, nil
}
