package models

import "time"

// Recipe caches an external recipe summary. RecipeID is the unique key on
// the external site, derived from the recipe URL.
type Recipe struct {
	ID                      uint      `gorm:"primary_key" json:"id"`
	RecipeID                string    `gorm:"not null;unique_index" json:"recipe_id"`
	Title                   string    `gorm:"not null" json:"title"`
	URL                     string    `gorm:"not null" json:"url"`
	ImageURL                *string   `json:"image_url,omitempty"`
	CookingTime             *string   `json:"cooking_time,omitempty"`
	Description             *string   `gorm:"type:text" json:"description,omitempty"`
	RequiredIngredientsText string    `gorm:"type:text" json:"required_ingredients_text"`
	Owner                   *string   `gorm:"index" json:"owner,omitempty"`
	IsFavorite              bool      `json:"is_favorite"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}
