package catalog

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/carta/internal/logger"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// RestaurantDishService manages the dish set of a restaurant. Each operation
// resolves its inputs in a fixed order and persists only after every check
// has passed, so the first failing check decides the error.
type RestaurantDishService struct {
	cupboard types.Cupboard
	log      *logger.Logger
}

func NewRestaurantDishService(cupboard types.Cupboard, log *logger.Logger) *RestaurantDishService {
	return &RestaurantDishService{
		cupboard: cupboard,
		log:      log.With("service", "RestaurantDishService"),
	}
}

func (s *RestaurantDishService) tables() (dishes, restaurants types.Table, err error) {
	if dishes, err = s.cupboard.GetTable(types.DishesTable); err != nil {
		return nil, nil, fmt.Errorf("opening dishes table: %w", err)
	}
	if restaurants, err = s.cupboard.GetTable(types.RestaurantsTable); err != nil {
		return nil, nil, fmt.Errorf("opening restaurants table: %w", err)
	}
	return dishes, restaurants, nil
}

func (s *RestaurantDishService) restaurant(ctx context.Context, tbl types.Table, id string) (*types.Restaurant, error) {
	r, found, err := getRestaurant(ctx, tbl, id, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFound(MsgMenuRestaurantGone)
	}
	return r, nil
}

func (s *RestaurantDishService) dish(ctx context.Context, tbl types.Table, id string) (*types.Dish, error) {
	d, found, err := getDish(ctx, tbl, id, false)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFound(MsgMenuDishGone)
	}
	return d, nil
}

// AddDishToRestaurant appends the dish to the restaurant's set. Adding a dish
// that is already a member adds it again.
func (s *RestaurantDishService) AddDishToRestaurant(ctx context.Context, restaurantID, dishID string) (*types.Restaurant, error) {
	dishes, restaurants, err := s.tables()
	if err != nil {
		return nil, err
	}
	r, err := s.restaurant(ctx, restaurants, restaurantID)
	if err != nil {
		return nil, err
	}
	d, err := s.dish(ctx, dishes, dishID)
	if err != nil {
		return nil, err
	}

	r.AddDish(d)
	if _, err := restaurants.Set(ctx, r.RestaurantID, r); err != nil {
		return nil, storeError("adding dish to restaurant", err)
	}
	s.log.Info("dish added to restaurant", "restaurant_id", r.RestaurantID, "dish_id", d.DishID)
	return r, nil
}

// FindDishesFromRestaurant returns the restaurant's set as stored, in order,
// duplicates included.
func (s *RestaurantDishService) FindDishesFromRestaurant(ctx context.Context, restaurantID string) ([]*types.Dish, error) {
	_, restaurants, err := s.tables()
	if err != nil {
		return nil, err
	}
	r, err := s.restaurant(ctx, restaurants, restaurantID)
	if err != nil {
		return nil, err
	}
	return r.Dishes, nil
}

// FindDishFromRestaurant returns the member of the restaurant's set with the
// given dish ID. The dish is resolved before the restaurant.
func (s *RestaurantDishService) FindDishFromRestaurant(ctx context.Context, restaurantID, dishID string) (*types.Dish, error) {
	dishes, restaurants, err := s.tables()
	if err != nil {
		return nil, err
	}
	d, err := s.dish(ctx, dishes, dishID)
	if err != nil {
		return nil, err
	}
	r, err := s.restaurant(ctx, restaurants, restaurantID)
	if err != nil {
		return nil, err
	}
	member := r.FindDish(d.DishID)
	if member == nil {
		return nil, types.NewPreconditionFailed(MsgDishNotInRestaurant)
	}
	return member, nil
}

// UpdateDishesFromRestaurant replaces the restaurant's set with the given
// dishes, in the given order. Every input must exist in the dish store and
// already be a member of the set; the first input failing either check
// aborts the call before anything is written. The stored set holds the
// dish records as loaded from the store, not the caller's copies.
func (s *RestaurantDishService) UpdateDishesFromRestaurant(ctx context.Context, restaurantID string, input []*types.Dish) (*types.Restaurant, error) {
	dishes, restaurants, err := s.tables()
	if err != nil {
		return nil, err
	}
	r, err := s.restaurant(ctx, restaurants, restaurantID)
	if err != nil {
		return nil, err
	}

	resolved := make([]*types.Dish, 0, len(input))
	for _, in := range input {
		id := ""
		if in != nil {
			id = in.DishID
		}
		d, err := s.dish(ctx, dishes, id)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, d)
	}

	for _, d := range resolved {
		if !r.HasDish(d.DishID) {
			return nil, types.NewPreconditionFailed(MsgDishNotInRestaurant)
		}
	}

	r.Dishes = resolved
	if _, err := restaurants.Set(ctx, r.RestaurantID, r); err != nil {
		return nil, storeError("replacing restaurant dishes", err)
	}
	s.log.Info("restaurant dishes replaced", "restaurant_id", r.RestaurantID, "count", len(resolved))
	return r, nil
}

// DeleteDishFromRestaurant removes every occurrence of the dish from the
// restaurant's set and returns the updated restaurant. The dish itself stays.
func (s *RestaurantDishService) DeleteDishFromRestaurant(ctx context.Context, restaurantID, dishID string) (*types.Restaurant, error) {
	dishes, restaurants, err := s.tables()
	if err != nil {
		return nil, err
	}
	d, err := s.dish(ctx, dishes, dishID)
	if err != nil {
		return nil, err
	}
	r, err := s.restaurant(ctx, restaurants, restaurantID)
	if err != nil {
		return nil, err
	}
	if !r.HasDish(d.DishID) {
		return nil, types.NewPreconditionFailed(MsgDishNotInRestaurant)
	}

	removed := r.RemoveDish(d.DishID)
	if _, err := restaurants.Set(ctx, r.RestaurantID, r); err != nil {
		return nil, storeError("removing dish from restaurant", err)
	}
	s.log.Info("dish removed from restaurant", "restaurant_id", r.RestaurantID, "dish_id", d.DishID, "removed", removed)
	return r, nil
}
