package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// CatalogController serves the public, read-only catalog surface.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// List returns every product, newest first. An empty catalog is a 200
// with an empty array, never an error.
func (ct *CatalogController) List(c *ctx.Context) {
	products, err := ct.service.List(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("catalog list failed", "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}
	c.Success(products)
}

// Show returns a single product. Unknown and malformed ids are both a
// plain 404. Each hit bumps a best-effort redis view counter.
func (ct *CatalogController) Show(c *ctx.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.NotFound()
		return
	}

	product, err := ct.service.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.NotFound()
			return
		}
		logger.WithCtx(c.Context()).Error("catalog show failed", "id", id, "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}

	cache.Incr(c.Context(), fmt.Sprintf("views:product:%d", product.ID))

	c.Success(product)
}
