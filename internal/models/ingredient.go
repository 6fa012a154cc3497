package models

import "time"

// Ingredient is a user-owned perishable stock record.
type Ingredient struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	Owner        string    `gorm:"not null;index" json:"owner"`
	CategoryID   *uint     `gorm:"index" json:"category_id,omitempty"`
	Category     *Category `json:"category,omitempty"`
	LocationID   uint      `gorm:"not null;index" json:"location_id"`
	Location     *Location `json:"location,omitempty"`
	Name         string    `gorm:"not null" json:"name"`
	ExpiryDate   time.Time `gorm:"not null" json:"expiry_date"`
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`
	Price        *int64    `json:"price,omitempty"`
	StoreName    *string   `json:"store_name,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// IngredientStatus classifies how close an ingredient is to its expiry date.
type IngredientStatus string

const (
	StatusExpired IngredientStatus = "expired"
	StatusDanger  IngredientStatus = "danger"
	StatusWarning IngredientStatus = "warning"
	StatusSafe    IngredientStatus = "safe"
)

// DaysLeft returns the number of whole days until the expiry date,
// negative once it has passed. Both sides are compared at day granularity.
func (i *Ingredient) DaysLeft(now time.Time) int {
	today := truncateToDay(now)
	expiry := truncateToDay(i.ExpiryDate)
	return int(expiry.Sub(today).Hours() / 24)
}

// Status buckets the remaining days: expired (<0), danger (<=3),
// warning (<=7), safe otherwise.
func (i *Ingredient) Status(now time.Time) IngredientStatus {
	switch d := i.DaysLeft(now); {
	case d < 0:
		return StatusExpired
	case d <= 3:
		return StatusDanger
	case d <= 7:
		return StatusWarning
	default:
		return StatusSafe
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
