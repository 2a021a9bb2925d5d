package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// AdminController serves the password-gated product CRUD. The gate
// middleware has already authenticated the request by the time any of
// these handlers run.
type AdminController struct {
	service *services.CatalogService
}

func NewAdminController(service *services.CatalogService) *AdminController {
	return &AdminController{service: service}
}

// List is the dashboard view of the catalog, same ordering as the
// public listing.
func (ct *AdminController) List(c *ctx.Context) {
	products, err := ct.service.List(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("admin list failed", "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}
	c.Success(products)
}

// Create inserts a new product from the raw form values.
func (ct *AdminController) Create(c *ctx.Context) {
	var form services.ProductForm
	if !c.BindJSON(&form) {
		return
	}

	product, errs, err := ct.service.Create(c.Context(), form)
	if errs != nil {
		c.ValidationError(errs)
		return
	}
	if err != nil {
		logger.WithCtx(c.Context()).Error("product create failed", "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}

	c.Created(product)
}

// Update fully replaces the five mutable fields of a product.
func (ct *AdminController) Update(c *ctx.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.NotFound()
		return
	}

	var form services.ProductForm
	if !c.BindJSON(&form) {
		return
	}

	errs, err := ct.service.Update(c.Context(), uint(id), form)
	if errs != nil {
		c.ValidationError(errs)
		return
	}
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.NotFound()
			return
		}
		logger.WithCtx(c.Context()).Error("product update failed", "id", id, "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}

	c.Success(map[string]bool{"success": true})
}

// Delete removes a product by id.
func (ct *AdminController) Delete(c *ctx.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.NotFound()
		return
	}

	if err := ct.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.NotFound()
			return
		}
		logger.WithCtx(c.Context()).Error("product delete failed", "id", id, "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}

	c.Success(map[string]bool{"success": true})
}
