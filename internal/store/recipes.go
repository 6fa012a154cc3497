package store

import "larder/internal/models"

// UpsertRecipe caches an external recipe summary keyed on its external ID.
// An existing row gets its title, URL and image refreshed.
func (s *Store) UpsertRecipe(r *models.Recipe) error {
	var existing models.Recipe
	err := s.db.Where("recipe_id = ?", r.RecipeID).First(&existing).Error
	if err != nil {
		if translate(err) == ErrNotFound {
			return s.db.Create(r).Error
		}
		return err
	}

	existing.Title = r.Title
	existing.URL = r.URL
	existing.ImageURL = r.ImageURL
	if err := s.db.Save(&existing).Error; err != nil {
		return err
	}
	*r = existing
	return nil
}

// ListRecipes returns all cached recipes, most recently seen first.
func (s *Store) ListRecipes() ([]models.Recipe, error) {
	var rs []models.Recipe
	if err := s.db.Order("updated_at desc").Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}
