package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysLeft(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"expires today", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 0},
		{"expires tomorrow", time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), 1},
		{"expired yesterday", time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), -1},
		{"time of day ignored", time.Date(2024, 6, 11, 23, 59, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := Ingredient{ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, ing.DaysLeft(now))
		})
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	tests := []struct {
		name   string
		expiry time.Time
		want   IngredientStatus
	}{
		{"past expiry", day(-1), StatusExpired},
		{"expires today", day(0), StatusDanger},
		{"three days out", day(3), StatusDanger},
		{"four days out", day(4), StatusWarning},
		{"seven days out", day(7), StatusWarning},
		{"eight days out", day(8), StatusSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := Ingredient{ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, ing.Status(now))
		})
	}
}

func TestSnapshot(t *testing.T) {
	price := int64(480)
	store := "Central Market"
	used := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

	ing := Ingredient{
		Owner:      "alice",
		Name:       "chicken thigh",
		Category:   &Category{Name: "Meat"},
		ExpiryDate: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Quantity:   3,
		Price:      &price,
		StoreName:  &store,
	}

	h := Snapshot(&ing, 2, used)

	assert.Equal(t, "alice", h.Owner)
	assert.Equal(t, "chicken thigh", h.ItemName)
	assert.Equal(t, 2, h.QuantityUsed)
	assert.Equal(t, used, h.UsedAt)
	if assert.NotNil(t, h.CategoryName) {
		assert.Equal(t, "Meat", *h.CategoryName)
	}
	if assert.NotNil(t, h.ExpiryDateAtUsage) {
		assert.Equal(t, ing.ExpiryDate, *h.ExpiryDateAtUsage)
	}
	assert.Equal(t, &price, h.PriceAtUsage)
	assert.Equal(t, &store, h.StoreNameAtUsage)
}

func TestSnapshotWithoutCategory(t *testing.T) {
	ing := Ingredient{Owner: "alice", Name: "leftovers", Quantity: 1}
	h := Snapshot(&ing, 1, time.Now())

	assert.Nil(t, h.CategoryName)
	assert.Nil(t, h.PriceAtUsage)
	assert.Nil(t, h.StoreNameAtUsage)
}
