// Package catalog holds the dish, restaurant and association managers. The
// managers enforce the business rules on top of a types.Cupboard and report
// every rule violation as a *types.BusinessError.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/carta/internal/logger"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// Fixed business error messages.
const (
	MsgDishNotFound        = "The dish with the given id was not found"
	MsgRestaurantNotFound  = "The restaurant with the given id was not found"
	MsgCostNotPositive     = "The cost must be a positive number"
	MsgMenuRestaurantGone  = "Restaurant not found"
	MsgMenuDishGone        = "Dish not found"
	MsgDishNotInRestaurant = "Dish not found in the restaurant"
)

// MsgInvalidCategory is the BadRequest message for an unknown dish category.
var MsgInvalidCategory = "The category must be one of the following: " + types.DishCategoryList()

// MsgInvalidKitchenType is the BadRequest message for an unknown kitchen type.
var MsgInvalidKitchenType = "The kitchen type must be one of the following: " + types.KitchenTypeList()

// Catalog bundles the three managers over one Cupboard.
type Catalog struct {
	Dishes      *DishService
	Restaurants *RestaurantService
	Menu        *RestaurantDishService
}

// New wires the managers to cupboard. A nil log discards output.
func New(cupboard types.Cupboard, log *logger.Logger) *Catalog {
	if log == nil {
		log = logger.NewNop()
	}
	return &Catalog{
		Dishes:      NewDishService(cupboard, log),
		Restaurants: NewRestaurantService(cupboard, log),
		Menu:        NewRestaurantDishService(cupboard, log),
	}
}

// getDish loads a dish. found is false when the store has no dish with that
// ID; err is then nil.
func getDish(ctx context.Context, tbl types.Table, id string, withAssociations bool) (dish *types.Dish, found bool, err error) {
	v, err := tbl.Get(ctx, id, withAssociations)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading dish %s: %w", id, err)
	}
	d, ok := v.(*types.Dish)
	if !ok {
		return nil, false, fmt.Errorf("loading dish %s: unexpected %T", id, v)
	}
	return d, true, nil
}

// getRestaurant loads a restaurant, like getDish.
func getRestaurant(ctx context.Context, tbl types.Table, id string, withAssociations bool) (restaurant *types.Restaurant, found bool, err error) {
	v, err := tbl.Get(ctx, id, withAssociations)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading restaurant %s: %w", id, err)
	}
	r, ok := v.(*types.Restaurant)
	if !ok {
		return nil, false, fmt.Errorf("loading restaurant %s: unexpected %T", id, v)
	}
	if withAssociations && r.Dishes == nil {
		r.Dishes = []*types.Dish{}
	}
	return r, true, nil
}

// storeError translates a failed write. Invariant violations caught by the
// store become BadRequest; anything else is an infrastructure failure.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidCost),
		errors.Is(err, types.ErrInvalidKind),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidID):
		return types.NewBadRequest(err.Error())
	case errors.Is(err, types.ErrDanglingDish):
		return types.NewNotFound(MsgMenuDishGone)
	}
	return fmt.Errorf("%s: %w", op, err)
}
