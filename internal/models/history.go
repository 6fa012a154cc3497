package models

import "time"

// UsageHistory is an immutable snapshot written whenever stock is consumed
// or discarded. It copies the ingredient's fields at that moment and never
// references the ingredient afterwards, so it survives its deletion.
type UsageHistory struct {
	ID                uint       `gorm:"primary_key" json:"id"`
	Owner             string     `gorm:"not null;index" json:"owner"`
	ItemName          string     `gorm:"not null" json:"item_name"`
	CategoryName      *string    `json:"category_name,omitempty"`
	QuantityUsed      int        `gorm:"not null" json:"quantity_used"`
	UsedAt            time.Time  `gorm:"index" json:"used_at"`
	ExpiryDateAtUsage *time.Time `json:"expiry_date_at_usage,omitempty"`
	PriceAtUsage      *int64     `json:"price_at_usage,omitempty"`
	StoreNameAtUsage  *string    `json:"store_name_at_usage,omitempty"`
}

// Snapshot builds the history row for consuming quantityUsed units of ing.
// The category name is denormalized on purpose; the row must stay readable
// after the category or the ingredient itself is gone.
func Snapshot(ing *Ingredient, quantityUsed int, at time.Time) UsageHistory {
	h := UsageHistory{
		Owner:            ing.Owner,
		ItemName:         ing.Name,
		QuantityUsed:     quantityUsed,
		UsedAt:           at,
		PriceAtUsage:     ing.Price,
		StoreNameAtUsage: ing.StoreName,
	}
	expiry := ing.ExpiryDate
	h.ExpiryDateAtUsage = &expiry
	if ing.Category != nil {
		name := ing.Category.Name
		h.CategoryName = &name
	}
	return h
}
