package inventory

import (
	"errors"

	"larder/internal/store"
)

var (
	// ErrNotFound is returned when the ingredient or template does not
	// exist for the caller.
	ErrNotFound = store.ErrNotFound
	// ErrInvalidAmount rejects non-positive usage amounts before any read.
	ErrInvalidAmount = errors.New("inventory: amount must be positive")
	// ErrEmptySelection is returned by bulk operations with no selected ids.
	ErrEmptySelection = errors.New("inventory: no items selected")
	// ErrUnknownAction is returned by bulk operations with an unrecognized
	// action name.
	ErrUnknownAction = errors.New("inventory: unknown bulk action")
	// ErrNoDefaultLocation is returned when a quick-add template carries no
	// default location; an ingredient cannot exist without one.
	ErrNoDefaultLocation = errors.New("inventory: template has no default location")
)
