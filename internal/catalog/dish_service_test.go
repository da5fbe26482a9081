package catalog

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/carta/pkg/types"
)

func TestDishService_FindAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Catalog) {
		ctx := context.Background()

		all, err := c.Dishes.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		created := createDishes(t, c, "Ajiaco", "Bandeja", "Arepa", "Empanada", "Lulada")
		all, err = c.Dishes.FindAll(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, dishIDs(created), dishIDs(all))
		for _, d := range all {
			assert.NotNil(t, d.Restaurants)
		}
	})
}

func TestDishService_CreateRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Catalog) {
		ctx := context.Background()
		in := sampleDish("Sancocho")

		created, err := c.Dishes.Create(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, created.DishID)
		assert.Empty(t, in.DishID, "input must not be modified")

		got, err := c.Dishes.FindOne(ctx, created.DishID)
		require.NoError(t, err)
		assert.Equal(t, in.Name, got.Name)
		assert.Equal(t, in.Description, got.Description)
		assert.Equal(t, in.Cost, got.Cost)
		assert.Equal(t, in.Category, got.Category)
		assert.Empty(t, got.Restaurants)
	})
}

func TestDishService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		dish    *types.Dish
		message string
	}{
		{"zero cost", &types.Dish{Name: "a", Description: "b", Cost: 0, Category: types.CategoryMain}, MsgCostNotPositive},
		{"negative cost", &types.Dish{Name: "a", Description: "b", Cost: -3, Category: types.CategoryMain}, MsgCostNotPositive},
		{"unknown category", &types.Dish{Name: "a", Description: "b", Cost: 3, Category: "snack"}, MsgInvalidCategory},
		{"empty category", &types.Dish{Name: "a", Description: "b", Cost: 3}, MsgInvalidCategory},
		{"NaN cost", &types.Dish{Name: "a", Description: "b", Cost: math.NaN(), Category: types.CategoryMain}, MsgCostNotPositive},
		{"infinite cost", &types.Dish{Name: "a", Description: "b", Cost: math.Inf(1), Category: types.CategoryMain}, MsgCostNotPositive},
		{"cost checked before category", &types.Dish{Name: "a", Description: "b", Cost: -1, Category: "snack"}, MsgCostNotPositive},
	}
	forEachBackend(t, func(t *testing.T, c *Catalog) {
		ctx := context.Background()
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := c.Dishes.Create(ctx, tt.dish)
				requireBusinessError(t, err, types.KindBadRequest, tt.message)

				all, err := c.Dishes.FindAll(ctx)
				require.NoError(t, err)
				assert.Empty(t, all, "nothing may be persisted")
			})
		}

		_, err := c.Dishes.Create(ctx, &types.Dish{Name: "Arepa", Description: "Corn cake", Cost: 4, Category: types.CategoryStarter})
		require.NoError(t, err, "a rejected dish must leave the store writable")
	})
}

func TestDishService_FindOneNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Catalog) {
		createDishes(t, c, "Arepa")
		for _, id := range []string{"00000000-0000-0000-0000-000000000000", "missing", ""} {
			_, err := c.Dishes.FindOne(context.Background(), id)
			requireBusinessError(t, err, types.KindNotFound, MsgDishNotFound)
		}
	})
}

func TestDishService_Update(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Catalog) {
		ctx := context.Background()
		d := createDishes(t, c, "Arepa")[0]

		updated, err := c.Dishes.Update(ctx, d.DishID, &types.Dish{Cost: 30, Category: types.CategoryStarter})
		require.NoError(t, err)
		assert.Equal(t, d.DishID, updated.DishID)
		assert.Equal(t, "Arepa", updated.Name, "zero-valued patch fields keep the stored value")
		assert.Equal(t, 30.0, updated.Cost)
		assert.Equal(t, types.CategoryStarter, updated.Category)

		got, err := c.Dishes.FindOne(ctx, d.DishID)
		require.NoError(t, err)
		assert.Equal(t, 30.0, got.Cost)
	})
}

func TestDishService_UpdateValidationOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Catalog) {
		ctx := context.Background()
		d := createDishes(t, c, "Arepa")[0]

		// Validation runs before the lookup, so a missing id still reports
		// the value error first.
		_, err := c.Dishes.Update(ctx, "missing", &types.Dish{Cost: -1, Category: types.CategoryMain})
		requireBusinessError(t, err, types.KindBadRequest, MsgCostNotPositive)

		_, err = c.Dishes.Update(ctx, "missing", &types.Dish{Cost: 1, Category: "snack"})
		requireBusinessError(t, err, types.KindBadRequest, MsgInvalidCategory)

		_, err = c.Dishes.Update(ctx, "missing", &types.Dish{Cost: 1, Category: types.CategoryMain})
		requireBusinessError(t, err, types.KindNotFound, MsgDishNotFound)

		got, err := c.Dishes.FindOne(ctx, d.DishID)
		require.NoError(t, err)
		assert.Equal(t, d.Cost, got.Cost)
	})
}

func TestDishService_Delete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c *Catalog) {
		ctx := context.Background()
		d := createDishes(t, c, "Arepa")[0]
		r, err := c.Restaurants.Create(ctx, sampleRestaurantInput("Andres"))
		require.NoError(t, err)
		_, err = c.Menu.AddDishToRestaurant(ctx, r.RestaurantID, d.DishID)
		require.NoError(t, err)

		removed, err := c.Dishes.Delete(ctx, d.DishID)
		require.NoError(t, err)
		assert.Equal(t, d.DishID, removed.DishID)
		require.Len(t, removed.Restaurants, 1, "snapshot is taken before removal")

		_, err = c.Dishes.FindOne(ctx, d.DishID)
		requireBusinessError(t, err, types.KindNotFound, MsgDishNotFound)

		// The restaurant survives without the dish.
		got, err := c.Restaurants.FindOne(ctx, r.RestaurantID)
		require.NoError(t, err)
		assert.Empty(t, got.Dishes)

		_, err = c.Dishes.Delete(ctx, d.DishID)
		requireBusinessError(t, err, types.KindNotFound, MsgDishNotFound)
	})
}
