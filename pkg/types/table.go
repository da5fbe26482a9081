package types

import (
	"context"
	"errors"
)

// Table provides uniform storage operations for a single entity type.
// Get and Fetch return any; callers type-assert to *Dish or *Restaurant.
//
// withAssociations controls whether the restaurant/dish membership is loaded
// alongside the entity: Restaurant.Dishes for the restaurants table and
// Dish.Restaurants for the dishes table. Loading is explicit so the extra
// query is visible at the call site.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(ctx context.Context, id string, withAssociations bool) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated and written back into the entity. Returns the ID used.
	//
	// For restaurants, a non-nil Dishes slice replaces the stored dish set in
	// the same transaction as the row itself; a nil slice leaves the set
	// untouched. Dish.Restaurants is never written.
	Set(ctx context.Context, id string, data any) (string, error)

	// Delete removes the entity with the given ID together with its
	// membership rows. The entities on the other side are not touched.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(ctx context.Context, id string) error

	// Fetch returns every entity in the table in creation order.
	Fetch(ctx context.Context, withAssociations bool) ([]any, error)

	// Clear removes every entity in the table and its membership rows.
	Clear(ctx context.Context) error
}

// Table operation errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidID    = errors.New("invalid entity ID")
	ErrInvalidData  = errors.New("invalid entity data")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidCost  = errors.New("cost must be positive")
	ErrInvalidKind  = errors.New("invalid enumerated value")
	ErrDanglingDish = errors.New("dish set references an unknown dish")
)
