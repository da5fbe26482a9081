package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/carta/internal/catalog"
)

func (h *Handler) ListDishes(c *gin.Context) {
	dishes, err := h.catalog.Dishes.FindAll(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "ListDishes", err)
		return
	}
	RespondOK(c, dishes)
}

func (h *Handler) GetDish(c *gin.Context) {
	dish, err := h.catalog.Dishes.FindOne(c.Request.Context(), c.Param("dishId"))
	if err != nil {
		h.respondServiceError(c, "GetDish", err)
		return
	}
	RespondOK(c, dish)
}

func (h *Handler) CreateDish(c *gin.Context) {
	var req catalog.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	dish, err := h.catalog.Dishes.Create(c.Request.Context(), req.Dish())
	if err != nil {
		h.respondServiceError(c, "CreateDish", err)
		return
	}
	c.JSON(http.StatusCreated, dish)
}

func (h *Handler) UpdateDish(c *gin.Context) {
	var req catalog.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	dish, err := h.catalog.Dishes.Update(c.Request.Context(), c.Param("dishId"), req.Dish())
	if err != nil {
		h.respondServiceError(c, "UpdateDish", err)
		return
	}
	RespondOK(c, dish)
}

func (h *Handler) DeleteDish(c *gin.Context) {
	if _, err := h.catalog.Dishes.Delete(c.Request.Context(), c.Param("dishId")); err != nil {
		h.respondServiceError(c, "DeleteDish", err)
		return
	}
	c.Status(http.StatusNoContent)
}
