// Package httpapi exposes the catalog over HTTP with gin.
package httpapi

import (
	"github.com/mesh-intelligence/carta/internal/catalog"
	"github.com/mesh-intelligence/carta/internal/logger"
)

// Handler serves every catalog route.
type Handler struct {
	log     *logger.Logger
	catalog *catalog.Catalog
}

func NewHandler(log *logger.Logger, c *catalog.Catalog) *Handler {
	return &Handler{
		log:     log.With("handler", "CatalogHandler"),
		catalog: c,
	}
}
