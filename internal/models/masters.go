package models

import "time"

// Location is a storage-place master (refrigerator, freezer, pantry...).
// Ingredients reference it and block its deletion while they do.
type Location struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"not null;unique_index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a food-category master. Deleting one nulls the references
// on ingredients and templates instead of cascading.
type Category struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"not null;unique_index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FixedIngredient is an admin-curated template for one-tap registration
// of common ingredients.
type FixedIngredient struct {
	ID                uint      `gorm:"primary_key" json:"id"`
	Name              string    `gorm:"not null;unique_index" json:"name"`
	CategoryID        *uint     `gorm:"index" json:"category_id,omitempty"`
	Category          *Category `json:"category,omitempty"`
	IsQuickAdd        bool      `gorm:"index" json:"is_quick_add"`
	DefaultQuantity   int       `gorm:"not null;default:1" json:"default_quantity"`
	DefaultLocationID *uint     `gorm:"index" json:"default_location_id,omitempty"`
	DefaultLocation   *Location `json:"default_location,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
