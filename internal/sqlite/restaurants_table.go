// This file implements the restaurants table accessor for the SQLite backend.
// The restaurant owns the join rows: its dish set is written here.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/carta/pkg/types"
)

var _ types.Table = (*restaurantsTable)(nil)

type restaurantsTable struct {
	backend *Backend
}

const selectRestaurant = "SELECT restaurant_id, name, address, kitchen_type, website_url FROM restaurants"

func hydrateRestaurant(row rowScanner) (*types.Restaurant, error) {
	var r types.Restaurant
	if err := row.Scan(&r.RestaurantID, &r.Name, &r.Address, &r.KitchenType, &r.WebsiteURL); err != nil {
		return nil, err
	}
	return &r, nil
}

// Get retrieves a restaurant by ID. With associations, Dishes holds the dish
// set in insertion order, duplicates included.
func (rt *restaurantsTable) Get(ctx context.Context, id string, withAssociations bool) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := rt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	r, err := hydrateRestaurant(b.db.QueryRowContext(ctx, selectRestaurant+" WHERE restaurant_id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting restaurant %s: %w", id, err)
	}
	if withAssociations {
		if r.Dishes, err = rt.dishesOf(ctx, id); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Set validates and upserts a restaurant. When Dishes is non-nil the stored
// dish set is replaced by it in the same transaction; every dish must exist,
// otherwise ErrDanglingDish is returned and nothing is written.
func (rt *restaurantsTable) Set(ctx context.Context, id string, data any) (string, error) {
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

	if id == "" {
		id = newUUID()
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO restaurants (restaurant_id, name, address, kitchen_type, website_url)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (restaurant_id) DO UPDATE SET
    name = excluded.name,
    address = excluded.address,
    kitchen_type = excluded.kitchen_type,
    website_url = excluded.website_url`,
		id, r.Name, r.Address, r.KitchenType, r.WebsiteURL,
	)
	if err != nil {
		return "", fmt.Errorf("persisting restaurant: %w", err)
	}

	if r.Dishes != nil {
		if err := replaceDishSet(ctx, tx, id, r.DishIDs()); err != nil {
			return "", err
		}
	}

	files := []string{restaurantsJSONL}
	if r.Dishes != nil {
		files = append(files, restaurantDishesJSONL)
	}
	if err := b.commit(tx, files...); err != nil {
		return "", fmt.Errorf("committing restaurant: %w", err)
	}
	r.RestaurantID = id
	return id, nil
}

// replaceDishSet rewrites the membership rows of one restaurant with
// positions 0..n-1.
func replaceDishSet(ctx context.Context, tx *sql.Tx, restaurantID string, dishIDs []string) error {
	for _, dishID := range dishIDs {
		var one int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM dishes WHERE dish_id = ?", dishID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", types.ErrDanglingDish, dishID)
		}
		if err != nil {
			return fmt.Errorf("checking dish %s: %w", dishID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM restaurant_dishes WHERE restaurant_id = ?", restaurantID); err != nil {
		return fmt.Errorf("clearing dish set: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO restaurant_dishes (restaurant_id, position, dish_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing dish set insert: %w", err)
	}
	defer stmt.Close()

	for pos, dishID := range dishIDs {
		if _, err := stmt.ExecContext(ctx, restaurantID, pos, dishID); err != nil {
			return fmt.Errorf("inserting dish %s at %d: %w", dishID, pos, err)
		}
	}
	return nil
}

// Delete removes a restaurant and its membership rows. The dishes stay.
func (rt *restaurantsTable) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := rt.backend
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

	if _, err := tx.ExecContext(ctx, "DELETE FROM restaurant_dishes WHERE restaurant_id = ?", id); err != nil {
		return fmt.Errorf("deleting restaurant memberships: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM restaurants WHERE restaurant_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting restaurant: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking restaurant deletion: %w", err)
	} else if n == 0 {
		return types.ErrNotFound
	}
	if err := b.commit(tx, restaurantsJSONL, restaurantDishesJSONL); err != nil {
		return fmt.Errorf("committing restaurant deletion: %w", err)
	}
	return nil
}

// Fetch returns every restaurant in creation order.
func (rt *restaurantsTable) Fetch(ctx context.Context, withAssociations bool) ([]any, error) {
	b := rt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	rows, err := b.db.QueryContext(ctx, selectRestaurant+" ORDER BY restaurant_id")
	if err != nil {
		return nil, fmt.Errorf("fetching restaurants: %w", err)
	}
	var restaurants []*types.Restaurant
	for rows.Next() {
		r, err := hydrateRestaurant(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("hydrating restaurant: %w", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating restaurants: %w", err)
	}
	rows.Close()

	results := make([]any, 0, len(restaurants))
	for _, r := range restaurants {
		if withAssociations {
			if r.Dishes, err = rt.dishesOf(ctx, r.RestaurantID); err != nil {
				return nil, err
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// Clear removes every restaurant and all membership rows.
func (rt *restaurantsTable) Clear(ctx context.Context) error {
	b := rt.backend
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
	if _, err := tx.ExecContext(ctx, "DELETE FROM restaurants"); err != nil {
		return fmt.Errorf("clearing restaurants: %w", err)
	}
	if err := b.commit(tx, restaurantsJSONL, restaurantDishesJSONL); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	return nil
}

// dishesOf loads the dish set of a restaurant ordered by position. The
// result is never nil. The caller must hold b.mu.
func (rt *restaurantsTable) dishesOf(ctx context.Context, restaurantID string) ([]*types.Dish, error) {
	rows, err := rt.backend.db.QueryContext(ctx, `SELECT d.dish_id, d.name, d.description, d.cost, d.category
FROM restaurant_dishes rd
JOIN dishes d ON d.dish_id = rd.dish_id
WHERE rd.restaurant_id = ?
ORDER BY rd.position`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("loading dishes of restaurant %s: %w", restaurantID, err)
	}
	defer rows.Close()

	dishes := []*types.Dish{}
	for rows.Next() {
		d, err := hydrateDish(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dishes of restaurant %s: %w", restaurantID, err)
	}
	return dishes, nil
}
