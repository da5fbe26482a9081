package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/mesh-intelligence/carta/internal/logger"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// DishService manages dishes. Dishes are listed and fetched with the
// restaurants that offer them.
type DishService struct {
	cupboard types.Cupboard
	log      *logger.Logger
}

func NewDishService(cupboard types.Cupboard, log *logger.Logger) *DishService {
	return &DishService{
		cupboard: cupboard,
		log:      log.With("service", "DishService"),
	}
}

func (s *DishService) table() (types.Table, error) {
	tbl, err := s.cupboard.GetTable(types.DishesTable)
	if err != nil {
		return nil, fmt.Errorf("opening dishes table: %w", err)
	}
	return tbl, nil
}

// validateCost accepts finite positive costs only.
func validateCost(cost float64) error {
	if !(cost > 0) || math.IsInf(cost, 1) {
		return types.NewBadRequest(MsgCostNotPositive)
	}
	return nil
}

func validateCategory(category string) error {
	if !types.ValidDishCategory(category) {
		return types.NewBadRequest(MsgInvalidCategory)
	}
	return nil
}

// FindAll returns every dish with its restaurants.
func (s *DishService) FindAll(ctx context.Context) ([]*types.Dish, error) {
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}
	all, err := tbl.Fetch(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing dishes: %w", err)
	}
	dishes := make([]*types.Dish, 0, len(all))
	for _, v := range all {
		if d, ok := v.(*types.Dish); ok {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}

// FindOne returns the dish with its restaurants.
func (s *DishService) FindOne(ctx context.Context, id string) (*types.Dish, error) {
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}
	d, found, err := getDish(ctx, tbl, id, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFound(MsgDishNotFound)
	}
	return d, nil
}

// Create validates cost and category and stores a new dish. Any restaurants
// on the input are ignored.
func (s *DishService) Create(ctx context.Context, dish *types.Dish) (*types.Dish, error) {
	if err := validateCost(dish.Cost); err != nil {
		return nil, err
	}
	if err := validateCategory(dish.Category); err != nil {
		return nil, err
	}
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}

	stored := dish.Clone()
	stored.DishID = ""
	stored.Restaurants = nil
	id, err := tbl.Set(ctx, "", stored)
	if err != nil {
		return nil, storeError("creating dish", err)
	}
	s.log.Info("dish created", "dish_id", id)
	return stored, nil
}

// Update validates the patch, then merges its non-zero fields over the
// stored dish.
func (s *DishService) Update(ctx context.Context, id string, patch *types.Dish) (*types.Dish, error) {
	if err := validateCost(patch.Cost); err != nil {
		return nil, err
	}
	if err := validateCategory(patch.Category); err != nil {
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
	if _, err := tbl.Set(ctx, existing.DishID, existing); err != nil {
		return nil, storeError("updating dish", err)
	}
	s.log.Info("dish updated", "dish_id", existing.DishID)
	return existing, nil
}

// Delete removes the dish and returns it as it was before removal. The
// restaurants that offered it lose it from their sets.
func (s *DishService) Delete(ctx context.Context, id string) (*types.Dish, error) {
	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	tbl, err := s.table()
	if err != nil {
		return nil, err
	}
	if err := tbl.Delete(ctx, existing.DishID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.NewNotFound(MsgDishNotFound)
		}
		return nil, fmt.Errorf("deleting dish %s: %w", id, err)
	}
	s.log.Info("dish deleted", "dish_id", existing.DishID)
	return existing, nil
}
