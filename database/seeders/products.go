package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/collection"
)

func init() {
	Register("products", SeedProducts)
}

type seedProduct struct {
	name        string
	description string
	price       float64
	imageURL    string
	stock       int
}

var sampleProducts = []seedProduct{
	{"Ballpoint Pen", "Blue ink, medium tip", 9.50, "", 100},
	{"A5 Notebook", "Dotted, 120 pages", 4.25, "", 40},
	{"Ceramic Mug", "", 12.00, "", 15},
	{"Desk Lamp", "Warm white, USB-C powered", 34.90, "", 8},
	{"Sticker Pack", "", 3.00, "", 0},
}

// SeedProducts inserts a small demo catalog. It is a no-op when the
// Products table already has rows, so re-running seed is safe.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := collection.Map(sampleProducts, func(s seedProduct) models.Product {
		p := models.Product{Name: s.name, Price: s.price, Stock: s.stock}
		if s.description != "" {
			d := s.description
			p.Description = &d
		}
		if s.imageURL != "" {
			u := s.imageURL
			p.ImageURL = &u
		}
		return p
	})

	return db.Create(&products).Error
}
