package adminControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storelane/storefront-api/models"
)

var ErrBalanceBelowZero = errors.New("adjustment would make balance negative")

type AdjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AdjustBalance applies a signed admin adjustment to a user's balance and
// records it as a transaction. The balance is never allowed below zero, and
// the check happens against the locked row so a concurrent debit cannot
// slip underneath it.
func AdjustBalance(db *gorm.DB, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := forUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		balance = user.Balance.Add(amount)
		if balance.IsNegative() {
			return ErrBalanceBelowZero
		}
		if err := tx.Model(&user).UpdateColumn("balance", balance).Error; err != nil {
			return err
		}

		txn := models.Transaction{UserID: userID, Amount: amount, CreatedAt: time.Now()}
		return tx.Create(&txn).Error
	})
	return balance, err
}

// POST /admin/users/:id/balance
func AdjustBalanceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var req AdjustBalanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		balance, err := AdjustBalance(db, uint(userID), req.Amount)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, ErrBalanceBelowZero):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust balance"})
		default:
			c.JSON(http.StatusOK, gin.H{"balance": balance})
		}
	}
}

// DELETE /admin/users/:id — cascade removes the user's cart entries, orders,
// and transactions via the foreign key constraints.
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		result := db.Select("CartItems", "Orders", "Transactions").
			Delete(&models.User{ID: uint(userID)})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User removed"})
	}
}
