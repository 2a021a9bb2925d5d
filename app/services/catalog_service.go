package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// CatalogUpdated is fired after every successful mutation so listeners
// (the websocket hub) can nudge clients to re-fetch the catalog.
const CatalogUpdated = "catalog.updated"

// ErrProductNotFound mirrors the repository sentinel so controllers
// only depend on the service layer.
var ErrProductNotFound = repositories.ErrProductNotFound

// ProductForm carries the raw admin form values. Everything arrives as
// a string; Normalize turns it into typed Product fields. image_url is
// deliberately untagged: it is an opaque string, not checked for
// format or reachability.
type ProductForm struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description"`
	Price       string `json:"price"       validate:"required,numeric,gte=0"`
	ImageURL    string `json:"image_url"`
	Stock       string `json:"stock"       validate:"required,integer,gte=0"`
}

// Normalize validates a raw form against its tag rules and converts it
// into Product fields. Empty optional strings become NULL. Returns a
// field->message map on failure; pure, no I/O.
func Normalize(form ProductForm) (models.Product, map[string]string) {
	if errs := validate.Struct(form); validate.HasErrors(errs) {
		return models.Product{}, errs
	}

	var p models.Product
	p.Name = strings.TrimSpace(form.Name)

	if form.Description != "" {
		d := form.Description
		p.Description = &d
	}
	if form.ImageURL != "" {
		u := form.ImageURL
		p.ImageURL = &u
	}

	// Tag rules already guarantee these parse.
	p.Price, _ = strconv.ParseFloat(form.Price, 64)
	p.Stock, _ = strconv.Atoi(form.Stock)

	return p, nil
}

// CatalogService orchestrates catalog reads and admin mutations.
type CatalogService struct {
	repo *repositories.ProductRepository
}

func NewCatalogService(repo *repositories.ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns every product, newest first.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

// Get returns a single product by id.
func (s *CatalogService) Get(ctx context.Context, id uint) (models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create normalizes the form and inserts a new product. Validation
// failures return the field error map with no store access at all.
func (s *CatalogService) Create(ctx context.Context, form ProductForm) (models.Product, map[string]string, error) {
	p, errs := Normalize(form)
	if errs != nil {
		return models.Product{}, errs, nil
	}

	err := s.repo.Create(ctx, &p)
	metrics.RecordMutation("create", err)
	if err != nil {
		return models.Product{}, nil, err
	}

	event.Fire(CatalogUpdated, p.ID)
	return p, nil, nil
}

// Update normalizes the form and fully replaces the five mutable
// fields of the product with the given id.
func (s *CatalogService) Update(ctx context.Context, id uint, form ProductForm) (map[string]string, error) {
	p, errs := Normalize(form)
	if errs != nil {
		return errs, nil
	}

	err := s.repo.Update(ctx, id, p)
	metrics.RecordMutation("update", err)
	if err != nil {
		return nil, err
	}

	event.Fire(CatalogUpdated, id)
	return nil, nil
}

// Delete removes the product with the given id.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	metrics.RecordMutation("delete", err)
	if err != nil {
		return err
	}

	event.Fire(CatalogUpdated, id)
	return nil
}
