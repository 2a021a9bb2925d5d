package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// ErrProductNotFound is returned when an id matches no row.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository handles database operations for Product. Every
// call is a fresh round trip; nothing is cached or batched.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns the full catalog, newest first. On success the slice is
// never nil, so callers can serialise it as [] directly.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("list", time.Now())

	products := []models.Product{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, err
}

// GetByID looks up a single product by primary key.
func (r *ProductRepository) GetByID(ctx context.Context, id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("get", time.Now())

	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return product, err
}

// Create inserts a new row and fills in the backend-assigned id and
// created_at on the passed product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	return r.db.WithContext(ctx).Create(product).Error
}

// Update replaces the five mutable columns of the row with the given id.
// id and created_at are never touched. Returns ErrProductNotFound when
// no such row exists.
func (r *ProductRepository) Update(ctx context.Context, id uint, product models.Product) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	// Existence check first: Updates reports zero rows affected both
	// for a missing id and for values identical to the stored ones.
	var existing models.Product
	if err := r.db.WithContext(ctx).Select("id").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return r.db.WithContext(ctx).Model(&models.Product{ID: id}).
		Select("name", "description", "price", "image_url", "stock").
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"image_url":   product.ImageURL,
			"stock":       product.Stock,
		}).Error
}

// Delete removes the row with the given id. Returns ErrProductNotFound
// when no such row exists.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
