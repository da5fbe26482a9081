// JSON record structures for the JSONL data files. Each file holds one record
// per line; field names match the SQLite column names.
package sqlite

import "github.com/mesh-intelligence/carta/pkg/types"

// dishJSON represents a dish in dishes.jsonl.
type dishJSON struct {
	DishID      string  `json:"dish_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Category    string  `json:"category"`
}

// restaurantJSON represents a restaurant in restaurants.jsonl.
type restaurantJSON struct {
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	KitchenType  string `json:"kitchen_type"`
	WebsiteURL   string `json:"website_url"`
}

// restaurantDishJSON represents one membership row in restaurant_dishes.jsonl.
type restaurantDishJSON struct {
	RestaurantID string `json:"restaurant_id"`
	Position     int    `json:"position"`
	DishID       string `json:"dish_id"`
}

func (r dishJSON) toDish() *types.Dish {
	return &types.Dish{
		DishID:      r.DishID,
		Name:        r.Name,
		Description: r.Description,
		Cost:        r.Cost,
		Category:    r.Category,
	}
}

func (r restaurantJSON) toRestaurant() *types.Restaurant {
	return &types.Restaurant{
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Address:      r.Address,
		KitchenType:  r.KitchenType,
		WebsiteURL:   r.WebsiteURL,
	}
}
