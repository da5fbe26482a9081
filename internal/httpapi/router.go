package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/carta/internal/logger"
	"github.com/mesh-intelligence/carta/internal/validation"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string

	Handler       *Handler
	HealthHandler *HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	validation.InstallGin()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Log))
	r.Use(CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}

	h := cfg.Handler
	if h == nil {
		return r
	}

	// Dishes
	dishes := r.Group("/dishes")
	{
		dishes.GET("", h.ListDishes)
		dishes.POST("", h.CreateDish)
		dishes.GET("/:dishId", h.GetDish)
		dishes.PUT("/:dishId", h.UpdateDish)
		dishes.DELETE("/:dishId", h.DeleteDish)
	}

	// Restaurants
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("", h.ListRestaurants)
		restaurants.POST("", h.CreateRestaurant)
		restaurants.GET("/:restaurantId", h.GetRestaurant)
		restaurants.PUT("/:restaurantId", h.UpdateRestaurant)
		restaurants.DELETE("/:restaurantId", h.DeleteRestaurant)

		// Dish set
		restaurants.GET("/:restaurantId/dishes", h.FindDishesFromRestaurant)
		restaurants.PUT("/:restaurantId/dishes", h.UpdateDishesFromRestaurant)
		restaurants.POST("/:restaurantId/dishes/:dishId", h.AddDishToRestaurant)
		restaurants.GET("/:restaurantId/dishes/:dishId", h.FindDishFromRestaurant)
		restaurants.DELETE("/:restaurantId/dishes/:dishId", h.DeleteDishFromRestaurant)
	}

	return r
}
