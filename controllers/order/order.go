package orderControllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storelane/storefront-api/models"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Checkout converts the user's cart into an immutable order, debits the
// balance, and appends the audit transaction. All five effects (order,
// order items, cart delete, debit, transaction row) land atomically or not
// at all. Stock is untouched here: it was already reserved at add-to-cart
// time.
func Checkout(db *gorm.DB, userID uint) (models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := forUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		var orderItems []models.OrderItem
		for _, item := range items {
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
		}

		if user.Balance.LessThan(total) {
			return ErrInsufficientBalance
		}

		order = models.Order{
			UserID:    userID,
			Ref:       generateOrderRef(),
			Items:     orderItems,
			Total:     total,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&user).
			UpdateColumn("balance", user.Balance.Sub(total)).Error; err != nil {
			return err
		}

		txn := models.Transaction{UserID: userID, Amount: total.Neg(), CreatedAt: time.Now()}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	broadcastNewOrder(order)
	return order, nil
}

// displayLocation returns the fixed zone order timestamps are shifted into
// for display. Storage stays UTC.
func displayLocation() *time.Location {
	hours, err := strconv.Atoi(os.Getenv("DISPLAY_TZ_OFFSET_HOURS"))
	if err != nil || hours == 0 {
		return time.UTC
	}
	return time.FixedZone("display", hours*3600)
}

// POST /user/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		order, err := Checkout(db, userID)
		switch {
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		default:
			c.JSON(http.StatusCreated, gin.H{"message": "Purchase successful", "order": order})
		}
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		loc := displayLocation()
		for i := range orders {
			orders[i].CreatedAt = orders[i].CreatedAt.In(loc)
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
