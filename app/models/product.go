package models

import "time"

// Product is a row in the Products table. Description and ImageURL are
// pointers so an absent value is stored as NULL, never as "".
//
// Products are hard-deleted; the model deliberately does not embed
// gorm.Model to avoid its soft-delete column.
type Product struct {
	ID          uint      `gorm:"primaryKey"             json:"id"`
	Name        string    `gorm:"size:255;not null"      json:"name"`
	Description *string   `gorm:"type:text"              json:"description"`
	Price       float64   `gorm:"not null"               json:"price"`
	ImageURL    *string   `gorm:"size:2048"              json:"image_url"`
	Stock       int       `gorm:"not null"               json:"stock"`
	CreatedAt   time.Time `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

// TableName keeps the capitalised table name the hosted backend uses.
func (Product) TableName() string {
	return "Products"
}
