package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/carta/internal/logger"
	"github.com/mesh-intelligence/carta/internal/store"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// backends lists the cupboards every catalog test runs against.
var backends = []string{types.BackendSQLite, types.BackendMemory}

// forEachBackend runs fn with a fresh catalog on every backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, c *Catalog)) {
	t.Helper()
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			cupboard, err := store.Open(types.Config{Backend: backend, DataDir: t.TempDir()})
			require.NoError(t, err)
			t.Cleanup(func() { cupboard.Detach() })
			fn(t, New(cupboard, logger.NewNop()))
		})
	}
}

func sampleDish(name string) *types.Dish {
	return &types.Dish{
		Name:        name,
		Description: name + " of the house",
		Cost:        21.5,
		Category:    types.CategoryMain,
	}
}

func sampleRestaurantInput(name string) *types.Restaurant {
	return &types.Restaurant{
		Name:        name,
		Address:     "Carrera 7 # 12-34",
		KitchenType: types.KitchenColombian,
		WebsiteURL:  "https://example.co",
	}
}

// requireBusinessError asserts err is a BusinessError of kind with message.
func requireBusinessError(t *testing.T, err error, kind types.ErrorKind, message string) {
	t.Helper()
	require.Error(t, err)
	got, ok := types.KindOf(err)
	require.True(t, ok, "expected a BusinessError, got %v", err)
	assert.Equal(t, kind, got)
	assert.Equal(t, message, err.Error())
}

func createDishes(t *testing.T, c *Catalog, names ...string) []*types.Dish {
	t.Helper()
	out := make([]*types.Dish, 0, len(names))
	for _, n := range names {
		d, err := c.Dishes.Create(context.Background(), sampleDish(n))
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

func dishIDs(dishes []*types.Dish) []string {
	ids := make([]string, 0, len(dishes))
	for _, d := range dishes {
		ids = append(ids, d.DishID)
	}
	return ids
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "The category must be one of the following: starter, main, dessert, beverage", MsgInvalidCategory)
	assert.Equal(t, "The kitchen type must be one of the following: italian, japanese, mexican, colombian, indian, international", MsgInvalidKitchenType)
}

func TestNewWithNilLogger(t *testing.T) {
	cupboard, err := store.Open(types.Config{Backend: types.BackendMemory})
	require.NoError(t, err)
	defer cupboard.Detach()

	c := New(cupboard, nil)
	_, err = c.Dishes.FindAll(context.Background())
	assert.NoError(t, err)
}

func TestDetachedCupboardIsInfrastructureError(t *testing.T) {
	cupboard, err := store.Open(types.Config{Backend: types.BackendMemory})
	require.NoError(t, err)
	c := New(cupboard, nil)
	require.NoError(t, cupboard.Detach())

	_, err = c.Dishes.FindAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrCupboardDetached)
	_, isBusiness := types.KindOf(err)
	assert.False(t, isBusiness)
}
