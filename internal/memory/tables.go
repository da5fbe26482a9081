package memory

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/carta/pkg/types"
)

var (
	_ types.Table = (*dishesTable)(nil)
	_ types.Table = (*restaurantsTable)(nil)
)

type dishesTable struct {
	backend *Backend
}

func (dt *dishesTable) Get(_ context.Context, id string, withAssociations bool) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := dt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	d, ok := b.dishes[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	if withAssociations {
		d.Restaurants = b.restaurantsOf(id)
	}
	return &d, nil
}

func (dt *dishesTable) Set(_ context.Context, id string, data any) (string, error) {
	dish, ok := data.(*types.Dish)
	if !ok || dish == nil {
		return "", types.ErrInvalidData
	}
	if err := types.CheckDish(dish); err != nil {
		return "", err
	}

	b := dt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrCupboardDetached
	}

	if id == "" {
		id = newUUID()
	}
	stored := *dish
	stored.DishID = id
	stored.Restaurants = nil
	if _, exists := b.dishes[id]; !exists {
		b.dishOrder = append(b.dishOrder, id)
	}
	b.dishes[id] = stored
	dish.DishID = id
	return id, nil
}

func (dt *dishesTable) Delete(_ context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := dt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrCupboardDetached
	}

	if _, ok := b.dishes[id]; !ok {
		return types.ErrNotFound
	}
	delete(b.dishes, id)
	b.dishOrder = removeID(b.dishOrder, id)
	for rid, ids := range b.members {
		kept := ids[:0]
		for _, did := range ids {
			if did != id {
				kept = append(kept, did)
			}
		}
		b.members[rid] = kept
	}
	return nil
}

func (dt *dishesTable) Fetch(_ context.Context, withAssociations bool) ([]any, error) {
	b := dt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	out := make([]any, 0, len(b.dishOrder))
	for _, id := range b.dishOrder {
		d := b.dishes[id]
		if withAssociations {
			d.Restaurants = b.restaurantsOf(id)
		}
		out = append(out, &d)
	}
	return out, nil
}

func (dt *dishesTable) Clear(_ context.Context) error {
	b := dt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrCupboardDetached
	}

	b.dishes = make(map[string]types.Dish)
	b.dishOrder = nil
	b.members = make(map[string][]string)
	return nil
}

type restaurantsTable struct {
	backend *Backend
}

func (rt *restaurantsTable) Get(_ context.Context, id string, withAssociations bool) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := rt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	r, ok := b.restaurants[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	if withAssociations {
		r.Dishes = b.dishesOf(id)
	}
	return &r, nil
}

// Set upserts a restaurant. A non-nil Dishes slice replaces the membership
// list; every dish must exist.
func (rt *restaurantsTable) Set(_ context.Context, id string, data any) (string, error) {
	r, ok := data.(*types.Restaurant)
	if !ok || r == nil {
		return "", types.ErrInvalidData
	}
	if err := types.CheckRestaurant(r); err != nil {
		return "", err
	}

	b := rt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrCupboardDetached
	}

	var dishIDs []string
	if r.Dishes != nil {
		dishIDs = r.DishIDs()
		for _, did := range dishIDs {
			if _, ok := b.dishes[did]; !ok {
				return "", fmt.Errorf("%w: %s", types.ErrDanglingDish, did)
			}
		}
	}

	if id == "" {
		id = newUUID()
	}
	stored := *r
	stored.RestaurantID = id
	stored.Dishes = nil
	if _, exists := b.restaurants[id]; !exists {
		b.restaurantOrder = append(b.restaurantOrder, id)
	}
	b.restaurants[id] = stored
	if dishIDs != nil {
		b.members[id] = dishIDs
	}
	r.RestaurantID = id
	return id, nil
}

func (rt *restaurantsTable) Delete(_ context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := rt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrCupboardDetached
	}

	if _, ok := b.restaurants[id]; !ok {
		return types.ErrNotFound
	}
	delete(b.restaurants, id)
	delete(b.members, id)
	b.restaurantOrder = removeID(b.restaurantOrder, id)
	return nil
}

func (rt *restaurantsTable) Fetch(_ context.Context, withAssociations bool) ([]any, error) {
	b := rt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	out := make([]any, 0, len(b.restaurantOrder))
	for _, id := range b.restaurantOrder {
		r := b.restaurants[id]
		if withAssociations {
			r.Dishes = b.dishesOf(id)
		}
		out = append(out, &r)
	}
	return out, nil
}

func (rt *restaurantsTable) Clear(_ context.Context) error {
	b := rt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrCupboardDetached
	}

	b.restaurants = make(map[string]types.Restaurant)
	b.restaurantOrder = nil
	b.members = make(map[string][]string)
	return nil
}
