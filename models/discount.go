package models

import "time"

// Discount: at most one row per product, enforced by the admin upsert flow.
type Discount struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint      `gorm:"index;not null" json:"product_id"`
	Percentage float64   `gorm:"not null" json:"percentage"`
	CreatedAt  time.Time `json:"created_at"`
}
