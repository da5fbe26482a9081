package types

import "strings"

// Dish categories. Persisted as plain strings.
const (
	CategoryStarter  = "starter"
	CategoryMain     = "main"
	CategoryDessert  = "dessert"
	CategoryBeverage = "beverage"
)

// DishCategories lists the accepted categories in display order.
var DishCategories = []string{
	CategoryStarter,
	CategoryMain,
	CategoryDessert,
	CategoryBeverage,
}

var validDishCategories = map[string]bool{
	CategoryStarter:  true,
	CategoryMain:     true,
	CategoryDessert:  true,
	CategoryBeverage: true,
}

// ValidDishCategory reports whether category is one of DishCategories.
func ValidDishCategory(category string) bool {
	return validDishCategories[category]
}

// DishCategoryList returns the accepted categories joined for messages.
func DishCategoryList() string {
	return strings.Join(DishCategories, ", ")
}

// Dish is a menu item that any number of restaurants may offer.
type Dish struct {
	DishID      string  `json:"dish_id"`     // UUID v7, generated on creation.
	Name        string  `json:"name"`        // Required, at most MaxNameLength.
	Description string  `json:"description"` // Required, at most MaxDescriptionLength.
	Cost        float64 `json:"cost"`        // Strictly positive.
	Category    string  `json:"category"`    // One of DishCategories.

	// Restaurants offering this dish. Only populated when the dish was
	// loaded with associations; each restaurant is returned without its own
	// dish set.
	Restaurants []*Restaurant `json:"restaurants,omitzero"`
}

// Clone returns a copy of the dish. The Restaurants slice is copied one level
// deep so the caller may reorder it without touching the original.
func (d *Dish) Clone() *Dish {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Restaurants != nil {
		cp.Restaurants = make([]*Restaurant, len(d.Restaurants))
		for i, r := range d.Restaurants {
			cp.Restaurants[i] = r.Clone()
		}
	}
	return &cp
}

// Merge copies every non-zero field of patch over d. Identity and
// associations are not merged.
func (d *Dish) Merge(patch *Dish) {
	if patch == nil {
		return
	}
	if patch.Name != "" {
		d.Name = patch.Name
	}
	if patch.Description != "" {
		d.Description = patch.Description
	}
	if patch.Cost != 0 {
		d.Cost = patch.Cost
	}
	if patch.Category != "" {
		d.Category = patch.Category
	}
}
