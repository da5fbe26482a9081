package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mesh-intelligence/carta/pkg/types"
)

var (
	_ types.Table = (*dishesTable)(nil)
	_ types.Table = (*restaurantsTable)(nil)
)

const (
	selectDish       = "SELECT dish_id, name, description, cost, category FROM dishes"
	selectRestaurant = "SELECT restaurant_id, name, address, kitchen_type, website_url FROM restaurants"
)

func scanDish(row pgx.CollectableRow) (*types.Dish, error) {
	var d types.Dish
	err := row.Scan(&d.DishID, &d.Name, &d.Description, &d.Cost, &d.Category)
	return &d, err
}

func scanRestaurant(row pgx.CollectableRow) (*types.Restaurant, error) {
	var r types.Restaurant
	err := row.Scan(&r.RestaurantID, &r.Name, &r.Address, &r.KitchenType, &r.WebsiteURL)
	return &r, err
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func dishesOf(ctx context.Context, q querier, restaurantID string) ([]*types.Dish, error) {
	rows, err := q.Query(ctx, `SELECT d.dish_id, d.name, d.description, d.cost, d.category
FROM restaurant_dishes rd
JOIN dishes d ON d.dish_id = rd.dish_id
WHERE rd.restaurant_id = $1
ORDER BY rd.position`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("loading dishes of restaurant %s: %w", restaurantID, err)
	}
	dishes, err := pgx.CollectRows(rows, scanDish)
	if err != nil {
		return nil, fmt.Errorf("scanning dishes of restaurant %s: %w", restaurantID, err)
	}
	if dishes == nil {
		dishes = []*types.Dish{}
	}
	return dishes, nil
}

func restaurantsOf(ctx context.Context, q querier, dishID string) ([]*types.Restaurant, error) {
	rows, err := q.Query(ctx, `SELECT DISTINCT r.restaurant_id, r.name, r.address, r.kitchen_type, r.website_url
FROM restaurants r
JOIN restaurant_dishes rd ON rd.restaurant_id = r.restaurant_id
WHERE rd.dish_id = $1
ORDER BY r.restaurant_id`, dishID)
	if err != nil {
		return nil, fmt.Errorf("loading restaurants of dish %s: %w", dishID, err)
	}
	restaurants, err := pgx.CollectRows(rows, scanRestaurant)
	if err != nil {
		return nil, fmt.Errorf("scanning restaurants of dish %s: %w", dishID, err)
	}
	if restaurants == nil {
		restaurants = []*types.Restaurant{}
	}
	return restaurants, nil
}

type dishesTable struct {
	backend *Backend
}

func (dt *dishesTable) Get(ctx context.Context, id string, withAssociations bool) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	pool, err := dt.backend.acquire()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, selectDish+" WHERE dish_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("getting dish %s: %w", id, err)
	}
	d, err := pgx.CollectExactlyOneRow(rows, scanDish)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting dish %s: %w", id, err)
	}
	if withAssociations {
		if d.Restaurants, err = restaurantsOf(ctx, pool, id); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (dt *dishesTable) Set(ctx context.Context, id string, data any) (string, error) {
	dish, ok := data.(*types.Dish)
	if !ok || dish == nil {
		return "", types.ErrInvalidData
	}
	if err := types.CheckDish(dish); err != nil {
		return "", err
	}
	pool, err := dt.backend.acquire()
	if err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}
	_, err = pool.Exec(ctx, `INSERT INTO dishes (dish_id, name, description, cost, category)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (dish_id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    cost = EXCLUDED.cost,
    category = EXCLUDED.category`,
		id, dish.Name, dish.Description, dish.Cost, dish.Category,
	)
	if err != nil {
		return "", fmt.Errorf("persisting dish: %w", err)
	}
	dish.DishID = id
	return id, nil
}

// Delete removes the dish; ON DELETE CASCADE drops its membership rows.
func (dt *dishesTable) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	pool, err := dt.backend.acquire()
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, "DELETE FROM dishes WHERE dish_id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting dish: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (dt *dishesTable) Fetch(ctx context.Context, withAssociations bool) ([]any, error) {
	pool, err := dt.backend.acquire()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, selectDish+" ORDER BY dish_id")
	if err != nil {
		return nil, fmt.Errorf("fetching dishes: %w", err)
	}
	dishes, err := pgx.CollectRows(rows, scanDish)
	if err != nil {
		return nil, fmt.Errorf("scanning dishes: %w", err)
	}

	out := make([]any, 0, len(dishes))
	for _, d := range dishes {
		if withAssociations {
			if d.Restaurants, err = restaurantsOf(ctx, pool, d.DishID); err != nil {
				return nil, err
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (dt *dishesTable) Clear(ctx context.Context) error {
	pool, err := dt.backend.acquire()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "DELETE FROM dishes"); err != nil {
		return fmt.Errorf("clearing dishes: %w", err)
	}
	return nil
}

type restaurantsTable struct {
	backend *Backend
}

func (rt *restaurantsTable) Get(ctx context.Context, id string, withAssociations bool) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	pool, err := rt.backend.acquire()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, selectRestaurant+" WHERE restaurant_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("getting restaurant %s: %w", id, err)
	}
	r, err := pgx.CollectExactlyOneRow(rows, scanRestaurant)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting restaurant %s: %w", id, err)
	}
	if withAssociations {
		if r.Dishes, err = dishesOf(ctx, pool, id); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Set upserts the restaurant and, when Dishes is non-nil, replaces its
// membership rows in the same transaction.
func (rt *restaurantsTable) Set(ctx context.Context, id string, data any) (string, error) {
	r, ok := data.(*types.Restaurant)
	if !ok || r == nil {
		return "", types.ErrInvalidData
	}
	if err := types.CheckRestaurant(r); err != nil {
		return "", err
	}
	pool, err := rt.backend.acquire()
	if err != nil {
		return "", err
	}

	if id == "" {
		id = newUUID()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `INSERT INTO restaurants (restaurant_id, name, address, kitchen_type, website_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (restaurant_id) DO UPDATE SET
    name = EXCLUDED.name,
    address = EXCLUDED.address,
    kitchen_type = EXCLUDED.kitchen_type,
    website_url = EXCLUDED.website_url`,
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

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("committing restaurant: %w", err)
	}
	r.RestaurantID = id
	return id, nil
}

func replaceDishSet(ctx context.Context, tx pgx.Tx, restaurantID string, dishIDs []string) error {
	for _, dishID := range dishIDs {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM dishes WHERE dish_id = $1)", dishID).Scan(&exists); err != nil {
			return fmt.Errorf("checking dish %s: %w", dishID, err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", types.ErrDanglingDish, dishID)
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM restaurant_dishes WHERE restaurant_id = $1", restaurantID); err != nil {
		return fmt.Errorf("clearing dish set: %w", err)
	}

	batch := &pgx.Batch{}
	for pos, dishID := range dishIDs {
		batch.Queue("INSERT INTO restaurant_dishes (restaurant_id, position, dish_id) VALUES ($1, $2, $3)", restaurantID, pos, dishID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting dish set: %w", err)
	}
	return nil
}

// Delete removes the restaurant; ON DELETE CASCADE drops its membership
// rows.
func (rt *restaurantsTable) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	pool, err := rt.backend.acquire()
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, "DELETE FROM restaurants WHERE restaurant_id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (rt *restaurantsTable) Fetch(ctx context.Context, withAssociations bool) ([]any, error) {
	pool, err := rt.backend.acquire()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, selectRestaurant+" ORDER BY restaurant_id")
	if err != nil {
		return nil, fmt.Errorf("fetching restaurants: %w", err)
	}
	restaurants, err := pgx.CollectRows(rows, scanRestaurant)
	if err != nil {
		return nil, fmt.Errorf("scanning restaurants: %w", err)
	}

	out := make([]any, 0, len(restaurants))
	for _, r := range restaurants {
		if withAssociations {
			if r.Dishes, err = dishesOf(ctx, pool, r.RestaurantID); err != nil {
				return nil, err
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (rt *restaurantsTable) Clear(ctx context.Context) error {
	pool, err := rt.backend.acquire()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "DELETE FROM restaurants"); err != nil {
		return fmt.Errorf("clearing restaurants: %w", err)
	}
	return nil
}
