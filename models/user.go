package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string          `gorm:"uniqueIndex;not null" json:"username"`
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"not null" json:"-"`
	Balance      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	IsAdmin      bool            `gorm:"not null;default:false" json:"is_admin"`
	CartItems    []CartItem      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Transactions []Transaction   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}
