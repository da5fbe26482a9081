// Package memory implements an in-process Cupboard. Nothing is written to
// disk; state lives until Detach. It backs tests and `carta serve` runs that
// do not need persistence.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/carta/pkg/types"
)

// Backend implements types.Cupboard over Go maps. Membership is kept as an
// ordered list of dish IDs per restaurant, mirroring the restaurant_dishes
// join table of the SQL backends.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	tables   map[string]types.Table

	dishes          map[string]types.Dish
	dishOrder       []string
	restaurants     map[string]types.Restaurant
	restaurantOrder []string
	members         map[string][]string // restaurant ID -> dish IDs by position
}

var _ types.Cupboard = (*Backend)(nil)

// NewBackend creates a detached memory backend.
func NewBackend() *Backend {
	return &Backend{tables: make(map[string]types.Table)}
}

// GetTable returns the Table for the given name.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCupboardDetached
	}
	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach resets the backend to an empty catalog. DataDir is ignored.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendMemory {
		return types.ErrBackendUnknown
	}

	b.dishes = make(map[string]types.Dish)
	b.dishOrder = nil
	b.restaurants = make(map[string]types.Restaurant)
	b.restaurantOrder = nil
	b.members = make(map[string][]string)

	b.tables[types.DishesTable] = &dishesTable{backend: b}
	b.tables[types.RestaurantsTable] = &restaurantsTable{backend: b}
	b.attached = true
	return nil
}

// Detach drops all state. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.tables = make(map[string]types.Table)
	b.dishes = nil
	b.restaurants = nil
	b.members = nil
	return nil
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// removeID drops id from an order slice.
func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// dishesOf resolves the membership list of a restaurant. The caller must
// hold b.mu.
func (b *Backend) dishesOf(restaurantID string) []*types.Dish {
	ids := b.members[restaurantID]
	out := make([]*types.Dish, 0, len(ids))
	for _, id := range ids {
		d := b.dishes[id]
		out = append(out, &d)
	}
	return out
}

// restaurantsOf lists the restaurants offering a dish, once each, in
// creation order. The caller must hold b.mu.
func (b *Backend) restaurantsOf(dishID string) []*types.Restaurant {
	out := []*types.Restaurant{}
	for _, rid := range b.restaurantOrder {
		for _, did := range b.members[rid] {
			if did == dishID {
				r := b.restaurants[rid]
				out = append(out, &r)
				break
			}
		}
	}
	return out
}
