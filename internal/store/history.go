package store

import (
	"time"

	"larder/internal/models"
)

// MonthlySpend is the total spend for one calendar month of usage.
type MonthlySpend struct {
	Month      string `json:"month"`
	TotalPrice int64  `json:"total_price"`
}

// CategorySpend is the total spend for one snapshotted category name.
type CategorySpend struct {
	CategoryName string `json:"category_name"`
	TotalPrice   int64  `json:"total_price"`
}

// AppendUsage writes one usage-history row. Rows are append-only and are
// never touched again.
func (s *Store) AppendUsage(h *models.UsageHistory) error {
	if h.UsedAt.IsZero() {
		h.UsedAt = time.Now()
	}
	return s.db.Create(h).Error
}

// ListUsage returns the owner's history, newest first.
func (s *Store) ListUsage(owner string) ([]models.UsageHistory, error) {
	var hs []models.UsageHistory
	err := s.db.Where("owner = ?", owner).Order("used_at desc").Find(&hs).Error
	if err != nil {
		return nil, err
	}
	return hs, nil
}

// MonthlySpendTotals sums price_at_usage per calendar month of used_at,
// newest month first. Rows without a price count as zero.
func (s *Store) MonthlySpendTotals(owner string) ([]MonthlySpend, error) {
	var rows []MonthlySpend
	err := s.db.Table("usage_histories").
		Select(s.monthExpr()+" AS month, COALESCE(SUM(COALESCE(price_at_usage, 0)), 0) AS total_price").
		Where("owner = ?", owner).
		Group("month").
		Order("month desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategorySpendTotals sums price_at_usage per snapshotted category name,
// largest total first. Rows with no category are excluded.
func (s *Store) CategorySpendTotals(owner string) ([]CategorySpend, error) {
	var rows []CategorySpend
	err := s.db.Table("usage_histories").
		Select("category_name, COALESCE(SUM(COALESCE(price_at_usage, 0)), 0) AS total_price").
		Where("owner = ? AND category_name IS NOT NULL", owner).
		Group("category_name").
		Order("total_price desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// monthExpr yields the SQL that buckets used_at into a YYYY-MM string for
// the active dialect.
func (s *Store) monthExpr() string {
	if s.db.Dialect().GetName() == "postgres" {
		return "to_char(used_at, 'YYYY-MM')"
	}
	return "strftime('%Y-%m', used_at)"
}
