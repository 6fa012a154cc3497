package store

import (
	"time"

	"larder/internal/models"
)

// IngredientFilter narrows ingredient listings.
type IngredientFilter struct {
	CategoryID         *uint
	ExpiringWithinDays *int
}

// CreateIngredient inserts a new stock record, stamping RegisteredAt when
// the caller left it zero.
func (s *Store) CreateIngredient(ing *models.Ingredient) error {
	if ing.RegisteredAt.IsZero() {
		ing.RegisteredAt = time.Now()
	}
	return s.db.Create(ing).Error
}

// GetIngredient fetches one ingredient scoped to its owner, with category
// and location loaded.
func (s *Store) GetIngredient(owner string, id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := s.db.Preload("Category").Preload("Location").
		Where("owner = ?", owner).
		First(&ing, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ing, nil
}

// ListIngredients returns the owner's stock ordered by ascending expiry
// date, optionally filtered by category or expiry window.
func (s *Store) ListIngredients(owner string, f IngredientFilter) ([]models.Ingredient, error) {
	q := s.db.Preload("Category").Preload("Location").
		Where("owner = ?", owner)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.ExpiringWithinDays != nil {
		today := startOfDay(time.Now())
		q = q.Where("expiry_date >= ? AND expiry_date < ?",
			today, today.AddDate(0, 0, *f.ExpiringWithinDays+1))
	}

	var ings []models.Ingredient
	if err := q.Order("expiry_date asc").Find(&ings).Error; err != nil {
		return nil, err
	}
	return ings, nil
}

// ListIngredientsByIDs returns the owner's ingredients matching ids, in
// descending ID order. IDs the owner does not hold are silently dropped.
func (s *Store) ListIngredientsByIDs(owner string, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ings []models.Ingredient
	err := s.db.Preload("Category").
		Where("owner = ? AND id IN (?)", owner, ids).
		Order("id desc").
		Find(&ings).Error
	if err != nil {
		return nil, err
	}
	return ings, nil
}

// SaveIngredient persists changes to an existing ingredient.
func (s *Store) SaveIngredient(ing *models.Ingredient) error {
	return s.db.Save(ing).Error
}

// DeleteIngredient removes one of the owner's ingredients.
func (s *Store) DeleteIngredient(owner string, id uint) error {
	res := s.db.Where("owner = ?", owner).Delete(&models.Ingredient{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIngredientsByIDs bulk-removes the owner's ingredients matching ids
// and reports how many rows went away.
func (s *Store) DeleteIngredientsByIDs(owner string, ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.Where("owner = ? AND id IN (?)", owner, ids).Delete(&models.Ingredient{})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
