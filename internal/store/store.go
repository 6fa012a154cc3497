package store

import (
	"errors"

	"github.com/jinzhu/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist for the caller.
	ErrNotFound = errors.New("store: record not found")
	// ErrLocationInUse is returned when deleting a location that ingredients
	// or templates still reference.
	ErrLocationInUse = errors.New("store: location still referenced")
)

// Store is the repository layer over the relational database. Referential
// deletion policies (protect, set-null) are enforced here rather than by
// schema annotations.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a transactional Store, rolling back on error
// or panic.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if err := fn(&Store{db: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// translate maps the ORM's not-found error onto the store sentinel.
func translate(err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	return err
}
