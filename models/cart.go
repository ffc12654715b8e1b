package models

import "time"

// Cart rows are written by the cart service; this API only reads them when
// an order is placed and deletes them wholesale afterwards.
type Cart struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	ProductVariantID uint      `gorm:"not null" json:"product_variant_id"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
