package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/carta/internal/logger"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// RestaurantService manages restaurants. It never changes a restaurant's dish
// set; that is the job of RestaurantDishService.
type RestaurantService struct {
	cupboard types.Cupboard
	log      *logger.Logger
}

func NewRestaurantService(cupboard types.Cupboard, log *logger.Logger) *RestaurantService {
	return &RestaurantService{
		cupboard: cupboard,
		log:      log.With("service", "RestaurantService"),
	}
}

func (s *RestaurantService) table() (types.Table, error) {
	tbl, err := s.cupboard.GetTable(types.RestaurantsTable)
	if err != nil {
		return nil, fmt.Errorf("opening restaurants table: %w", err)
	}
	return tbl, nil
}

func validateKitchenType(kitchenType string) error {
	if !types.ValidKitchenType(kitchenType) {
		return types.NewBadRequest(MsgInvalidKitchenType)
	}
	return nil
}

// FindAll returns every restaurant with its dish set.
func (s *RestaurantService) FindAll(ctx context.Context) ([]*types.Restaurant, error) {
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}
	all, err := tbl.Fetch(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}
	restaurants := make([]*types.Restaurant, 0, len(all))
	for _, v := range all {
		if r, ok := v.(*types.Restaurant); ok {
			restaurants = append(restaurants, r)
		}
	}
	return restaurants, nil
}

// FindOne returns the restaurant with its dish set.
func (s *RestaurantService) FindOne(ctx context.Context, id string) (*types.Restaurant, error) {
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}
	r, found, err := getRestaurant(ctx, tbl, id, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFound(MsgRestaurantNotFound)
	}
	return r, nil
}

// Create validates the kitchen type and stores a new restaurant with an
// empty dish set. A dish set on the input is dropped.
func (s *RestaurantService) Create(ctx context.Context, restaurant *types.Restaurant) (*types.Restaurant, error) {
	if err := validateKitchenType(restaurant.KitchenType); err != nil {
		return nil, err
	}
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}

	stored := restaurant.Clone()
	stored.RestaurantID = ""
	stored.Dishes = nil
	id, err := tbl.Set(ctx, "", stored)
	if err != nil {
		return nil, storeError("creating restaurant", err)
	}
	stored.Dishes = []*types.Dish{}
	s.log.Info("restaurant created", "restaurant_id", id)
	return stored, nil
}

// Update validates the kitchen type, then merges the patch over the stored
// restaurant. The dish set is left as it is.
func (s *RestaurantService) Update(ctx context.Context, id string, patch *types.Restaurant) (*types.Restaurant, error) {
	if err := validateKitchenType(patch.KitchenType); err != nil {
		return nil, err
	}
	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}

	existing.Merge(patch)
	row := existing.Clone()
	row.Dishes = nil
	if _, err := tbl.Set(ctx, existing.RestaurantID, row); err != nil {
		return nil, storeError("updating restaurant", err)
	}
	s.log.Info("restaurant updated", "restaurant_id", existing.RestaurantID)
	return existing, nil
}

// Delete removes the restaurant and returns it as it was before removal. Its
// dishes are not deleted.
func (s *RestaurantService) Delete(ctx context.Context, id string) (*types.Restaurant, error) {
	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}
	if err := tbl.Delete(ctx, existing.RestaurantID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.NewNotFound(MsgRestaurantNotFound)
		}
		return nil, fmt.Errorf("deleting restaurant %s: %w", id, err)
	}
	s.log.Info("restaurant deleted", "restaurant_id", existing.RestaurantID)
	return existing, nil
}
