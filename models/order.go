package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once created; Total is frozen at checkout time.
type Order struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	Ref       string          `gorm:"uniqueIndex" json:"ref"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderItem snapshots the product name and unit price at purchase time, so
// later catalog edits do not rewrite order history.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}
