package store

import (
	"testing"
	"time"

	"larder/internal/database"
	"larder/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// An in-memory database lives per connection.
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func mustLocation(t *testing.T, s *Store, name string) *models.Location {
	t.Helper()
	loc := models.Location{Name: name}
	require.NoError(t, s.CreateLocation(&loc))
	return &loc
}

func mustCategory(t *testing.T, s *Store, name string) *models.Category {
	t.Helper()
	cat := models.Category{Name: name}
	require.NoError(t, s.CreateCategory(&cat))
	return &cat
}

func mustIngredient(t *testing.T, s *Store, ing models.Ingredient) *models.Ingredient {
	t.Helper()
	require.NoError(t, s.CreateIngredient(&ing))
	return &ing
}

func TestDeleteLocationProtectedByIngredients(t *testing.T) {
	s := newTestStore(t)
	loc := mustLocation(t, s, "Refrigerator")
	ing := mustIngredient(t, s, models.Ingredient{
		Owner: "alice", Name: "milk", LocationID: loc.ID,
		ExpiryDate: time.Now().AddDate(0, 0, 3), Quantity: 1,
	})

	err := s.DeleteLocation(loc.ID)
	assert.ErrorIs(t, err, ErrLocationInUse)

	// Still there
	locs, err := s.ListLocations()
	require.NoError(t, err)
	assert.Len(t, locs, 1)

	// Once the reference is gone, deletion goes through.
	require.NoError(t, s.DeleteIngredient("alice", ing.ID))
	require.NoError(t, s.DeleteLocation(loc.ID))
	locs, err = s.ListLocations()
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestDeleteLocationNullsTemplateDefault(t *testing.T) {
	s := newTestStore(t)
	loc := mustLocation(t, s, "Pantry")
	tpl := models.FixedIngredient{Name: "Bread", DefaultQuantity: 1, DefaultLocationID: &loc.ID}
	require.NoError(t, s.CreateFixedIngredient(&tpl))

	require.NoError(t, s.DeleteLocation(loc.ID))

	got, err := s.GetFixedIngredient(tpl.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DefaultLocationID)
}

func TestDeleteCategorySetsNullReferences(t *testing.T) {
	s := newTestStore(t)
	loc := mustLocation(t, s, "Refrigerator")
	cat := mustCategory(t, s, "Dairy")
	ing := mustIngredient(t, s, models.Ingredient{
		Owner: "alice", Name: "milk", LocationID: loc.ID, CategoryID: &cat.ID,
		ExpiryDate: time.Now().AddDate(0, 0, 3), Quantity: 1,
	})
	tpl := models.FixedIngredient{Name: "Milk", DefaultQuantity: 1, CategoryID: &cat.ID}
	require.NoError(t, s.CreateFixedIngredient(&tpl))

	require.NoError(t, s.DeleteCategory(cat.ID))

	got, err := s.GetIngredient("alice", ing.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	gotTpl, err := s.GetFixedIngredient(tpl.ID)
	require.NoError(t, err)
	assert.Nil(t, gotTpl.CategoryID)

	cats, err := s.ListCategories()
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestListIngredientsOrderedByExpiry(t *testing.T) {
	s := newTestStore(t)
	loc := mustLocation(t, s, "Refrigerator")
	now := time.Now()
	mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "late", LocationID: loc.ID, ExpiryDate: now.AddDate(0, 0, 9), Quantity: 1})
	mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "soon", LocationID: loc.ID, ExpiryDate: now.AddDate(0, 0, 1), Quantity: 1})
	mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "mid", LocationID: loc.ID, ExpiryDate: now.AddDate(0, 0, 5), Quantity: 1})
	// Another owner's stock never shows up.
	mustIngredient(t, s, models.Ingredient{Owner: "bob", Name: "bob's", LocationID: loc.ID, ExpiryDate: now, Quantity: 1})

	ings, err := s.ListIngredients("alice", IngredientFilter{})
	require.NoError(t, err)
	require.Len(t, ings, 3)
	assert.Equal(t, "soon", ings[0].Name)
	assert.Equal(t, "mid", ings[1].Name)
	assert.Equal(t, "late", ings[2].Name)
}

func TestListIngredientsExpiringWithin(t *testing.T) {
	s := newTestStore(t)
	loc := mustLocation(t, s, "Refrigerator")
	now := time.Now()
	mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "expired", LocationID: loc.ID, ExpiryDate: now.AddDate(0, 0, -1), Quantity: 1})
	mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "this week", LocationID: loc.ID, ExpiryDate: now.AddDate(0, 0, 6), Quantity: 1})
	mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "far out", LocationID: loc.ID, ExpiryDate: now.AddDate(0, 0, 30), Quantity: 1})

	days := 7
	ings, err := s.ListIngredients("alice", IngredientFilter{ExpiringWithinDays: &days})
	require.NoError(t, err)
	require.Len(t, ings, 1)
	assert.Equal(t, "this week", ings[0].Name)
}

func TestListIngredientsByIDsDescendingAndOwnerScoped(t *testing.T) {
	s := newTestStore(t)
	loc := mustLocation(t, s, "Refrigerator")
	now := time.Now()
	a := mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "a", LocationID: loc.ID, ExpiryDate: now, Quantity: 1})
	b := mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "b", LocationID: loc.ID, ExpiryDate: now, Quantity: 1})
	other := mustIngredient(t, s, models.Ingredient{Owner: "bob", Name: "c", LocationID: loc.ID, ExpiryDate: now, Quantity: 1})

	ings, err := s.ListIngredientsByIDs("alice", []uint{a.ID, b.ID, other.ID})
	require.NoError(t, err)
	require.Len(t, ings, 2)
	assert.Equal(t, b.ID, ings[0].ID)
	assert.Equal(t, a.ID, ings[1].ID)
}

func TestGetIngredientWrongOwner(t *testing.T) {
	s := newTestStore(t)
	loc := mustLocation(t, s, "Refrigerator")
	ing := mustIngredient(t, s, models.Ingredient{Owner: "alice", Name: "milk", LocationID: loc.ID, ExpiryDate: time.Now(), Quantity: 1})

	_, err := s.GetIngredient("bob", ing.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrCreateLocation(t *testing.T) {
	s := newTestStore(t)
	first, err := s.GetOrCreateLocation("Cellar")
	require.NoError(t, err)
	second, err := s.GetOrCreateLocation("Cellar")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	locs, err := s.ListLocations()
	require.NoError(t, err)
	assert.Len(t, locs, 1)
}

func TestListUsageNewestFirst(t *testing.T) {
	s := newTestStore(t)
	old := models.UsageHistory{Owner: "alice", ItemName: "old", QuantityUsed: 1, UsedAt: time.Now().Add(-48 * time.Hour)}
	recent := models.UsageHistory{Owner: "alice", ItemName: "recent", QuantityUsed: 1, UsedAt: time.Now()}
	require.NoError(t, s.AppendUsage(&old))
	require.NoError(t, s.AppendUsage(&recent))

	hs, err := s.ListUsage("alice")
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, "recent", hs[0].ItemName)
	assert.Equal(t, "old", hs[1].ItemName)
}

func TestSpendTotals(t *testing.T) {
	s := newTestStore(t)
	meat := "Meat"
	dairy := "Dairy"
	price := func(v int64) *int64 { return &v }

	june := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	july := time.Date(2024, 7, 5, 12, 0, 0, 0, time.UTC)

	rows := []models.UsageHistory{
		{Owner: "alice", ItemName: "chicken", CategoryName: &meat, QuantityUsed: 1, UsedAt: june, PriceAtUsage: price(300)},
		{Owner: "alice", ItemName: "beef", CategoryName: &meat, QuantityUsed: 1, UsedAt: july, PriceAtUsage: price(800)},
		{Owner: "alice", ItemName: "milk", CategoryName: &dairy, QuantityUsed: 1, UsedAt: july, PriceAtUsage: price(200)},
		// Missing price counts as zero, not an error or exclusion.
		{Owner: "alice", ItemName: "gift", CategoryName: &meat, QuantityUsed: 1, UsedAt: july, PriceAtUsage: nil},
		// No category: excluded from the category grouping only.
		{Owner: "alice", ItemName: "mystery", CategoryName: nil, QuantityUsed: 1, UsedAt: july, PriceAtUsage: price(999)},
		// Another owner is never aggregated.
		{Owner: "bob", ItemName: "steak", CategoryName: &meat, QuantityUsed: 1, UsedAt: july, PriceAtUsage: price(5000)},
	}
	for i := range rows {
		require.NoError(t, s.AppendUsage(&rows[i]))
	}

	monthly, err := s.MonthlySpendTotals("alice")
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-07", monthly[0].Month)
	assert.Equal(t, int64(800+200+0+999), monthly[0].TotalPrice)
	assert.Equal(t, "2024-06", monthly[1].Month)
	assert.Equal(t, int64(300), monthly[1].TotalPrice)

	byCategory, err := s.CategorySpendTotals("alice")
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Meat", byCategory[0].CategoryName)
	assert.Equal(t, int64(1100), byCategory[0].TotalPrice)
	assert.Equal(t, "Dairy", byCategory[1].CategoryName)
	assert.Equal(t, int64(200), byCategory[1].TotalPrice)
}

func TestUpsertRecipe(t *testing.T) {
	s := newTestStore(t)
	r := models.Recipe{RecipeID: "abc123", Title: "Chicken Curry", URL: "https://www.kurashiru.com/recipes/abc123"}
	require.NoError(t, s.UpsertRecipe(&r))

	updated := models.Recipe{RecipeID: "abc123", Title: "Chicken Curry (new)", URL: r.URL}
	require.NoError(t, s.UpsertRecipe(&updated))

	rs, err := s.ListRecipes()
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "Chicken Curry (new)", rs[0].Title)
	assert.Equal(t, r.ID, rs[0].ID)
}

func TestQuickAddListing(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateFixedIngredient(&models.FixedIngredient{Name: "Milk", IsQuickAdd: true, DefaultQuantity: 1}))
	require.NoError(t, s.CreateFixedIngredient(&models.FixedIngredient{Name: "Caviar", IsQuickAdd: false, DefaultQuantity: 1}))
	require.NoError(t, s.CreateFixedIngredient(&models.FixedIngredient{Name: "Bread", IsQuickAdd: true, DefaultQuantity: 1}))

	quick, err := s.ListQuickAddIngredients()
	require.NoError(t, err)
	require.Len(t, quick, 2)
	assert.Equal(t, "Bread", quick[0].Name)
	assert.Equal(t, "Milk", quick[1].Name)

	all, err := s.ListFixedIngredients()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
