package models

import "time"

type Product struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string           `gorm:"not null" json:"title"`
	Price     float64          `gorm:"not null" json:"price"`
	Image     []byte           `json:"image,omitempty"` // raw image bytes, stripped from order-detail payloads
	Variants  []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ProductVariant is a purchasable SKU of a Product with its own stock level.
type ProductVariant struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `json:"quantity"` // units in stock
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
