package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only audit row: negative amounts are purchase
// debits, positive amounts are balance top-ups.
type Transaction struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
