package database

import (
	"fmt"
	"time"

	"larder/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var db *gorm.DB

// Options configures the database connection.
type Options struct {
	Driver          string // sqlite3 or postgres
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogSQL          bool
}

// InitDB opens the database connection and configures the pool.
func InitDB(opts Options) (*gorm.DB, error) {
	var err error
	db, err = gorm.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.LogMode(opts.LogSQL)

	if opts.MaxIdleConns > 0 {
		db.DB().SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.MaxOpenConns > 0 {
		db.DB().SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.DB().SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates and updates the tables for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Location{},
		&models.Category{},
		&models.FixedIngredient{},
		&models.Ingredient{},
		&models.UsageHistory{},
		&models.Recipe{},
	).Error
}

// Seed ensures the default masters exist. It only writes into empty tables
// so user edits survive restarts.
func Seed(db *gorm.DB) error {
	var locationCount int64
	db.Model(&models.Location{}).Count(&locationCount)
	if locationCount == 0 {
		for _, name := range []string{"Refrigerator", "Freezer", "Pantry", "Other"} {
			if err := db.Create(&models.Location{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	var categoryCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	if categoryCount == 0 {
		for _, name := range []string{"Vegetables", "Meat", "Seafood", "Dairy", "Staples", "Seasoning"} {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	var templateCount int64
	db.Model(&models.FixedIngredient{}).Count(&templateCount)
	if templateCount == 0 {
		if err := seedQuickAddTemplates(db); err != nil {
			return err
		}
	}

	return nil
}

// seedQuickAddTemplates creates a starter set of one-tap templates wired to
// the seeded masters.
func seedQuickAddTemplates(db *gorm.DB) error {
	lookupLocation := func(name string) *uint {
		var loc models.Location
		if err := db.Where("name = ?", name).First(&loc).Error; err != nil {
			return nil
		}
		return &loc.ID
	}
	lookupCategory := func(name string) *uint {
		var cat models.Category
		if err := db.Where("name = ?", name).First(&cat).Error; err != nil {
			return nil
		}
		return &cat.ID
	}

	templates := []models.FixedIngredient{
		{Name: "Milk", IsQuickAdd: true, DefaultQuantity: 1, CategoryID: lookupCategory("Dairy"), DefaultLocationID: lookupLocation("Refrigerator")},
		{Name: "Eggs", IsQuickAdd: true, DefaultQuantity: 10, CategoryID: lookupCategory("Dairy"), DefaultLocationID: lookupLocation("Refrigerator")},
		{Name: "Bread", IsQuickAdd: true, DefaultQuantity: 1, CategoryID: lookupCategory("Staples"), DefaultLocationID: lookupLocation("Pantry")},
		{Name: "Tofu", IsQuickAdd: true, DefaultQuantity: 1, CategoryID: lookupCategory("Staples"), DefaultLocationID: lookupLocation("Refrigerator")},
		{Name: "Chicken Breast", IsQuickAdd: true, DefaultQuantity: 2, CategoryID: lookupCategory("Meat"), DefaultLocationID: lookupLocation("Refrigerator")},
	}
	for i := range templates {
		if err := db.Create(&templates[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection.
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
