// This file implements the dishes table accessor for the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/carta/pkg/types"
)

var _ types.Table = (*dishesTable)(nil)

// dishesTable hydrates rows of the dishes table into *types.Dish. Membership
// is read through restaurant_dishes but never written from this side.
type dishesTable struct {
	backend *Backend
}

const selectDish = "SELECT dish_id, name, description, cost, category FROM dishes"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func hydrateDish(row rowScanner) (*types.Dish, error) {
	var d types.Dish
	if err := row.Scan(&d.DishID, &d.Name, &d.Description, &d.Cost, &d.Category); err != nil {
		return nil, err
	}
	return &d, nil
}

// Get retrieves a dish by ID. With associations, Restaurants lists every
// restaurant whose set contains the dish, once each.
func (dt *dishesTable) Get(ctx context.Context, id string, withAssociations bool) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := dt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	dish, err := hydrateDish(b.db.QueryRowContext(ctx, selectDish+" WHERE dish_id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting dish %s: %w", id, err)
	}
	if withAssociations {
		if dish.Restaurants, err = dt.restaurantsOf(ctx, id); err != nil {
			return nil, err
		}
	}
	return dish, nil
}

// Set validates and upserts a dish. An empty id creates a new dish with a
// UUID v7 written back into DishID.
func (dt *dishesTable) Set(ctx context.Context, id string, data any) (string, error) {
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

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO dishes (dish_id, name, description, cost, category)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (dish_id) DO UPDATE SET
    name = excluded.name,
    description = excluded.description,
    cost = excluded.cost,
    category = excluded.category`,
		id, dish.Name, dish.Description, dish.Cost, dish.Category,
	)
	if err != nil {
		return "", fmt.Errorf("persisting dish: %w", err)
	}
	if err := b.commit(tx, dishesJSONL); err != nil {
		return "", fmt.Errorf("committing dish: %w", err)
	}
	dish.DishID = id
	return id, nil
}

// Delete removes a dish and every membership row pointing at it.
func (dt *dishesTable) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := dt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrCupboardDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM restaurant_dishes WHERE dish_id = ?", id); err != nil {
		return fmt.Errorf("deleting dish memberships: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM dishes WHERE dish_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting dish: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking dish deletion: %w", err)
	} else if n == 0 {
		return types.ErrNotFound
	}
	if err := b.commit(tx, dishesJSONL, restaurantDishesJSONL); err != nil {
		return fmt.Errorf("committing dish deletion: %w", err)
	}
	return nil
}

// Fetch returns every dish in creation order.
func (dt *dishesTable) Fetch(ctx context.Context, withAssociations bool) ([]any, error) {
	b := dt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	rows, err := b.db.QueryContext(ctx, selectDish+" ORDER BY dish_id")
	if err != nil {
		return nil, fmt.Errorf("fetching dishes: %w", err)
	}
	var dishes []*types.Dish
	for rows.Next() {
		d, err := hydrateDish(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("hydrating dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating dishes: %w", err)
	}
	rows.Close()

	results := make([]any, 0, len(dishes))
	for _, d := range dishes {
		if withAssociations {
			if d.Restaurants, err = dt.restaurantsOf(ctx, d.DishID); err != nil {
				return nil, err
			}
		}
		results = append(results, d)
	}
	return results, nil
}

// Clear removes every dish and all membership rows.
func (dt *dishesTable) Clear(ctx context.Context) error {
	b := dt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrCupboardDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM restaurant_dishes"); err != nil {
		return fmt.Errorf("clearing memberships: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM dishes"); err != nil {
		return fmt.Errorf("clearing dishes: %w", err)
	}
	if err := b.commit(tx, dishesJSONL, restaurantDishesJSONL); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	return nil
}

// restaurantsOf lists the restaurants whose set contains the dish. The
// restaurants are returned without their own dish sets. The caller must hold
// b.mu.
func (dt *dishesTable) restaurantsOf(ctx context.Context, dishID string) ([]*types.Restaurant, error) {
	rows, err := dt.backend.db.QueryContext(ctx, `SELECT DISTINCT r.restaurant_id, r.name, r.address, r.kitchen_type, r.website_url
FROM restaurants r
JOIN restaurant_dishes rd ON rd.restaurant_id = r.restaurant_id
WHERE rd.dish_id = ?
ORDER BY r.restaurant_id`, dishID)
	if err != nil {
		return nil, fmt.Errorf("loading restaurants of dish %s: %w", dishID, err)
	}
	defer rows.Close()

	restaurants := []*types.Restaurant{}
	for rows.Next() {
		r, err := hydrateRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating restaurant: %w", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating restaurants of dish %s: %w", dishID, err)
	}
	return restaurants, nil
}
