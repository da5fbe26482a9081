package types

import "math"

// Field length limits enforced by the request validation layer.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxAddressLength     = 200
)

// CheckDish verifies the invariants every stored dish satisfies. Backends
// call it before writing, mirroring the CHECK constraints of the SQL schema.
func CheckDish(d *Dish) error {
	if d.Name == "" {
		return ErrInvalidName
	}
	if !(d.Cost > 0) || math.IsInf(d.Cost, 1) {
		return ErrInvalidCost
	}
	if !ValidDishCategory(d.Category) {
		return ErrInvalidKind
	}
	return nil
}

// CheckRestaurant verifies the invariants every stored restaurant satisfies.
func CheckRestaurant(r *Restaurant) error {
	if r.Name == "" {
		return ErrInvalidName
	}
	if !ValidKitchenType(r.KitchenType) {
		return ErrInvalidKind
	}
	for _, d := range r.Dishes {
		if d == nil || d.DishID == "" {
			return ErrInvalidID
		}
	}
	return nil
}
