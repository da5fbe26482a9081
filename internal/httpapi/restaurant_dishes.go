package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/carta/internal/catalog"
)

// Path: /restaurants/:restaurantId/dishes/:dishId
func (h *Handler) AddDishToRestaurant(c *gin.Context) {
	restaurant, err := h.catalog.Menu.AddDishToRestaurant(c.Request.Context(), c.Param("restaurantId"), c.Param("dishId"))
	if err != nil {
		h.respondServiceError(c, "AddDishToRestaurant", err)
		return
	}
	RespondOK(c, restaurant)
}

func (h *Handler) FindDishesFromRestaurant(c *gin.Context) {
	dishes, err := h.catalog.Menu.FindDishesFromRestaurant(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		h.respondServiceError(c, "FindDishesFromRestaurant", err)
		return
	}
	RespondOK(c, dishes)
}

func (h *Handler) FindDishFromRestaurant(c *gin.Context) {
	dish, err := h.catalog.Menu.FindDishFromRestaurant(c.Request.Context(), c.Param("restaurantId"), c.Param("dishId"))
	if err != nil {
		h.respondServiceError(c, "FindDishFromRestaurant", err)
		return
	}
	RespondOK(c, dish)
}

// UpdateDishesFromRestaurant replaces the dish set. The body is a JSON array
// of {"dish_id": "..."} items; an empty array clears the set.
func (h *Handler) UpdateDishesFromRestaurant(c *gin.Context) {
	var refs []catalog.DishRef
	if err := c.ShouldBindJSON(&refs); err != nil {
		RespondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	if refs == nil {
		RespondError(c, http.StatusBadRequest, codeBadRequest, errDishSetNotArray)
		return
	}
	restaurant, err := h.catalog.Menu.UpdateDishesFromRestaurant(c.Request.Context(), c.Param("restaurantId"), catalog.DishRefs(refs))
	if err != nil {
		h.respondServiceError(c, "UpdateDishesFromRestaurant", err)
		return
	}
	RespondOK(c, restaurant)
}

func (h *Handler) DeleteDishFromRestaurant(c *gin.Context) {
	if _, err := h.catalog.Menu.DeleteDishFromRestaurant(c.Request.Context(), c.Param("restaurantId"), c.Param("dishId")); err != nil {
		h.respondServiceError(c, "DeleteDishFromRestaurant", err)
		return
	}
	c.Status(http.StatusNoContent)
}
