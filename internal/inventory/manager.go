package inventory

import (
	"time"

	"larder/internal/models"
	"larder/internal/monitoring"
	"larder/internal/store"
)

// Bulk action names accepted by BulkOperate.
const (
	ActionDelete = "delete"
	ActionUse    = "use"
)

// Manager drives the ingredient lifecycle: decrement, discard, quick add
// and bulk operations. Every quantity-reducing or deleting step pairs the
// stock mutation with exactly one usage-history snapshot, committed as a
// unit.
type Manager struct {
	store   *store.Store
	metrics *monitoring.Collector
}

// New creates a Manager. The collector may be nil.
func New(s *store.Store, metrics *monitoring.Collector) *Manager {
	return &Manager{store: s, metrics: metrics}
}

// DecrementResult reports what a decrement did.
type DecrementResult struct {
	QuantityUsed int  `json:"quantity_used"`
	Remaining    int  `json:"remaining"`
	Deleted      bool `json:"deleted"`
}

// Decrement consumes amount units of the owner's ingredient. Requesting
// more than is on hand consumes everything and deletes the row; the history
// snapshot records the quantity actually used, not the requested amount.
func (m *Manager) Decrement(owner string, id uint, amount int) (*DecrementResult, error) {
	if amount <= 0 {
		m.metrics.RecordOperation("decrement", "rejected")
		return nil, ErrInvalidAmount
	}

	ing, err := m.store.GetIngredient(owner, id)
	if err != nil {
		m.metrics.RecordOperation("decrement", "not_found")
		return nil, err
	}

	res := &DecrementResult{}
	err = m.store.Transaction(func(tx *store.Store) error {
		if ing.Quantity > amount {
			ing.Quantity -= amount
			if err := tx.SaveIngredient(ing); err != nil {
				return err
			}
			res.QuantityUsed = amount
			res.Remaining = ing.Quantity
			h := models.Snapshot(ing, amount, time.Now())
			return tx.AppendUsage(&h)
		}

		// Clamp to what is on hand, then delete.
		res.QuantityUsed = ing.Quantity
		res.Deleted = true
		h := models.Snapshot(ing, ing.Quantity, time.Now())
		if err := tx.AppendUsage(&h); err != nil {
			return err
		}
		return tx.DeleteIngredient(owner, ing.ID)
	})
	if err != nil {
		m.metrics.RecordOperation("decrement", "error")
		return nil, err
	}

	m.metrics.RecordOperation("decrement", "ok")
	m.metrics.RecordUsageRows(1)
	return res, nil
}

// Discard deletes the owner's ingredient outright, snapshotting the full
// remaining quantity into history first.
func (m *Manager) Discard(owner string, id uint) error {
	ing, err := m.store.GetIngredient(owner, id)
	if err != nil {
		m.metrics.RecordOperation("discard", "not_found")
		return err
	}

	err = m.store.Transaction(func(tx *store.Store) error {
		h := models.Snapshot(ing, ing.Quantity, time.Now())
		if err := tx.AppendUsage(&h); err != nil {
			return err
		}
		return tx.DeleteIngredient(owner, ing.ID)
	})
	if err != nil {
		m.metrics.RecordOperation("discard", "error")
		return err
	}

	m.metrics.RecordOperation("discard", "ok")
	m.metrics.RecordUsageRows(1)
	return nil
}

// QuickAdd instantiates an ingredient from a template: name, category and
// location are copied, quantity is the template default and the expiry date
// is today. The new ingredient is returned so the caller can route to an
// edit step.
func (m *Manager) QuickAdd(owner string, fixedID uint) (*models.Ingredient, error) {
	tpl, err := m.store.GetFixedIngredient(fixedID)
	if err != nil {
		m.metrics.RecordOperation("quick_add", "not_found")
		return nil, err
	}
	if tpl.DefaultLocationID == nil {
		m.metrics.RecordOperation("quick_add", "rejected")
		return nil, ErrNoDefaultLocation
	}

	now := time.Now()
	ing := &models.Ingredient{
		Owner:        owner,
		Name:         tpl.Name,
		CategoryID:   tpl.CategoryID,
		LocationID:   *tpl.DefaultLocationID,
		Quantity:     tpl.DefaultQuantity,
		ExpiryDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		RegisteredAt: now,
	}
	if err := m.store.CreateIngredient(ing); err != nil {
		m.metrics.RecordOperation("quick_add", "error")
		return nil, err
	}

	m.metrics.RecordOperation("quick_add", "ok")
	return ing, nil
}

// BulkOperate applies action to the owner's ingredients matching ids and
// reports how many rows were affected. Candidates are processed in
// descending ID order for deterministic results. "use" consumes one unit
// per row, item by item: rows processed before a later failure stay
// committed.
func (m *Manager) BulkOperate(owner string, ids []uint, action string) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	if action != ActionDelete && action != ActionUse {
		return 0, ErrUnknownAction
	}

	if action == ActionDelete {
		count, err := m.store.DeleteIngredientsByIDs(owner, ids)
		if err != nil {
			m.metrics.RecordOperation("bulk_delete", "error")
			return 0, err
		}
		m.metrics.RecordOperation("bulk_delete", "ok")
		return count, nil
	}

	items, err := m.store.ListIngredientsByIDs(owner, ids)
	if err != nil {
		m.metrics.RecordOperation("bulk_use", "error")
		return 0, err
	}

	used := 0
	for i := range items {
		ing := &items[i]
		if ing.Quantity <= 0 {
			continue
		}
		err := m.store.Transaction(func(tx *store.Store) error {
			h := models.Snapshot(ing, 1, time.Now())
			if err := tx.AppendUsage(&h); err != nil {
				return err
			}
			if ing.Quantity > 1 {
				ing.Quantity--
				return tx.SaveIngredient(ing)
			}
			return tx.DeleteIngredient(owner, ing.ID)
		})
		if err != nil {
			m.metrics.RecordOperation("bulk_use", "error")
			return used, err
		}
		used++
	}

	m.metrics.RecordOperation("bulk_use", "ok")
	m.metrics.RecordUsageRows(used)
	return used, nil
}

// SpendSummary holds the read-only spend projections over usage history.
type SpendSummary struct {
	Monthly    []store.MonthlySpend  `json:"monthly"`
	ByCategory []store.CategorySpend `json:"by_category"`
}

// SpendSummary aggregates the owner's spend by calendar month and by
// snapshotted category. Missing prices count as zero.
func (m *Manager) SpendSummary(owner string) (*SpendSummary, error) {
	monthly, err := m.store.MonthlySpendTotals(owner)
	if err != nil {
		return nil, err
	}
	byCategory, err := m.store.CategorySpendTotals(owner)
	if err != nil {
		return nil, err
	}
	return &SpendSummary{Monthly: monthly, ByCategory: byCategory}, nil
}
