package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/carta/internal/catalog"
)

func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.catalog.Restaurants.FindAll(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "ListRestaurants", err)
		return
	}
	RespondOK(c, restaurants)
}

func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.catalog.Restaurants.FindOne(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		h.respondServiceError(c, "GetRestaurant", err)
		return
	}
	RespondOK(c, restaurant)
}

func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req catalog.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	restaurant, err := h.catalog.Restaurants.Create(c.Request.Context(), req.Restaurant())
	if err != nil {
		h.respondServiceError(c, "CreateRestaurant", err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

func (h *Handler) UpdateRestaurant(c *gin.Context) {
	var req catalog.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	restaurant, err := h.catalog.Restaurants.Update(c.Request.Context(), c.Param("restaurantId"), req.Restaurant())
	if err != nil {
		h.respondServiceError(c, "UpdateRestaurant", err)
		return
	}
	RespondOK(c, restaurant)
}

func (h *Handler) DeleteRestaurant(c *gin.Context) {
	if _, err := h.catalog.Restaurants.Delete(c.Request.Context(), c.Param("restaurantId")); err != nil {
		h.respondServiceError(c, "DeleteRestaurant", err)
		return
	}
	c.Status(http.StatusNoContent)
}
