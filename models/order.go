package models

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"   // order placed, awaiting review
	StatusApproved  Status = "Approved"  // confirmed; stock is deducted on this edge
	StatusShipped   Status = "Shipped"   // out for delivery
	StatusDelivered Status = "Delivered" // customer received the items
	StatusCancelled Status = "Cancelled" // rejected or withdrawn
)

var ErrInvalidStatus = errors.New("invalid order status")

// ParseStatus maps a request string onto the known status set.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(s) {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "shipped":
		return StatusShipped, nil
	case "delivered":
		return StatusDelivered, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// StockDelta is the inventory effect of a status transition.
type StockDelta int

const (
	StockNone StockDelta = iota
	StockDecrement
	StockIncrement
)

// TransitionDelta reports how variant stock changes when an order moves from
// oldStatus to newStatus. Stock moves only on the edges into and out of
// Approved; re-applying the current status never touches it.
func TransitionDelta(oldStatus, newStatus Status) StockDelta {
	switch {
	case oldStatus == newStatus:
		return StockNone
	case newStatus == StatusApproved:
		return StockDecrement
	case oldStatus == StatusApproved:
		return StockIncrement
	default:
		return StockNone
	}
}

type Order struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Phone     string         `json:"phone"`
	Payment   string         `json:"payment"`
	Status    Status         `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	Products  []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt time.Time      `json:"created_at"`
}

// OrderProduct is one line of an order: the permanent snapshot of a cart row
// taken when the order was placed.
type OrderProduct struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	OrderID          uint           `gorm:"index" json:"order_id"`
	ProductVariantID uint           `json:"product_variant_id"`
	ProductVariant   ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant"`
	Quantity         int            `json:"quantity"`
	CreatedAt        time.Time      `json:"created_at"`
}
