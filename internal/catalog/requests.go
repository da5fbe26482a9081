package catalog

import "github.com/mesh-intelligence/carta/pkg/types"

// Request bodies shared by the HTTP handlers and the CLI. The binding tags
// cover presence, length and format. Cost sign and the enumerated fields are
// left to the managers so their fixed messages reach the caller.

// DishRequest is the body of dish create and update.
type DishRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"required,max=500"`
	Cost        *float64 `json:"cost" binding:"required"`
	Category    string   `json:"category" binding:"required"`
}

// Dish converts the request into an entity.
func (r DishRequest) Dish() *types.Dish {
	d := &types.Dish{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.Cost != nil {
		d.Cost = *r.Cost
	}
	return d
}

// RestaurantRequest is the body of restaurant create and update.
type RestaurantRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"required,max=200"`
	KitchenType string `json:"kitchen_type" binding:"required"`
	WebsiteURL  string `json:"website_url" binding:"required,url"`
}

// Restaurant converts the request into an entity with no dish set.
func (r RestaurantRequest) Restaurant() *types.Restaurant {
	return &types.Restaurant{
		Name:        r.Name,
		Address:     r.Address,
		KitchenType: r.KitchenType,
		WebsiteURL:  r.WebsiteURL,
	}
}

// DishRef identifies a dish in a dish-set replacement.
type DishRef struct {
	DishID string `json:"dish_id" binding:"required"`
}

// DishRefs converts replacement items into dish references.
func DishRefs(refs []DishRef) []*types.Dish {
	out := make([]*types.Dish, 0, len(refs))
	for _, ref := range refs {
		out = append(out, &types.Dish{DishID: ref.DishID})
	}
	return out
}
