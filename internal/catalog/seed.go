package catalog

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/carta/pkg/types"
)

// sampleDishes are inserted by Seed.
var sampleDishes = []types.Dish{
	{Name: "Bruschetta", Description: "Grilled bread with tomato, garlic and basil", Cost: 8.5, Category: types.CategoryStarter},
	{Name: "Margherita", Description: "Tomato, mozzarella and basil pizza", Cost: 14, Category: types.CategoryMain},
	{Name: "Carbonara", Description: "Spaghetti with guanciale, egg and pecorino", Cost: 16.5, Category: types.CategoryMain},
	{Name: "Tiramisu", Description: "Coffee-soaked ladyfingers with mascarpone", Cost: 7, Category: types.CategoryDessert},
	{Name: "Limonata", Description: "Fresh lemonade", Cost: 4, Category: types.CategoryBeverage},
}

// sampleRestaurant offers every sample dish.
var sampleRestaurant = types.Restaurant{
	Name:        "Trattoria Carta",
	Address:     "Via Roma 1, Bologna",
	KitchenType: types.KitchenItalian,
	WebsiteURL:  "https://trattoria.example.com",
}

// Seed fills an empty catalog with sample dishes and one restaurant offering
// them, going through the managers so every rule applies. It does nothing
// and returns nil when any dish or restaurant already exists.
func (c *Catalog) Seed(ctx context.Context) (*types.Restaurant, error) {
	dishes, err := c.Dishes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	restaurants, err := c.Restaurants.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(dishes) > 0 || len(restaurants) > 0 {
		return nil, nil
	}

	restaurant, err := c.Restaurants.Create(ctx, &sampleRestaurant)
	if err != nil {
		return nil, fmt.Errorf("seeding restaurant: %w", err)
	}
	for i := range sampleDishes {
		dish, err := c.Dishes.Create(ctx, &sampleDishes[i])
		if err != nil {
			return nil, fmt.Errorf("seeding dish %s: %w", sampleDishes[i].Name, err)
		}
		if restaurant, err = c.Menu.AddDishToRestaurant(ctx, restaurant.RestaurantID, dish.DishID); err != nil {
			return nil, fmt.Errorf("seeding menu: %w", err)
		}
	}
	return restaurant, nil
}
