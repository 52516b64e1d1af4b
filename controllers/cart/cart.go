package cartControllers

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

var (
	ErrProductNotFound   = errors.New("product does not exist")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrCartItemNotFound  = errors.New("cart item not found")
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// forUpdate takes a row lock on databases that support it. SQLite (used in
// tests) serializes writers on its own and rejects FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AddToCart merges the requested quantity into the user's cart row for the
// product and reserves the stock. The stock check, the cart upsert, and the
// stock decrement share one transaction so two concurrent adds cannot
// over-commit inventory.
func AddToCart(db *gorm.DB, userID uint, req AddToCartRequest) (models.CartItem, error) {
	var item models.CartItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := forUpdate(tx).First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if product.Stock < req.Quantity {
			return ErrInsufficientStock
		}

		err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				UserID:    userID,
				ProductID: product.ID,
				Quantity:  req.Quantity,
				AddedAt:   time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			item.Quantity += req.Quantity
			item.AddedAt = time.Now()
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		// Reservation-on-add: stock comes off as soon as it enters a cart.
		return tx.Model(&product).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Quantity)).Error
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// RemoveFromCart decrements the cart row by one, or deletes it when all is
// set, releasing the reserved stock either way.
func RemoveFromCart(db *gorm.DB, userID, productID uint, all bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		released := 1
		if all || item.Quantity <= 1 {
			released = item.Quantity
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
		} else {
			item.Quantity--
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Product{}).Where("id = ?", productID).
			UpdateColumn("stock", gorm.Expr("stock + ?", released)).Error
	})
}

// ClearCart deletes every cart row for the user and releases all reserved
// stock. Clearing an already-empty cart is a no-op.
func ClearCart(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
}

// CartContents returns the user's cart rows with product data plus the
// running total at live prices.
func CartContents(db *gorm.DB, userID uint) ([]models.CartItem, decimal.Decimal, error) {
	var items []models.CartItem
	if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return items, total, nil
}

// POST /user/cart
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToCart(db, userID, req)
		switch {
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		default:
			c.JSON(http.StatusOK, item)
		}
	}
}

// DELETE /user/cart/:product_id?all=true
func RemoveFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		all := c.Query("all") == "true"

		err = RemoveFromCart(db, userID, uint(productID), all)
		switch {
		case errors.Is(err, ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
		}
	}
}

// DELETE /user/cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		if err := ClearCart(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /user/cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		items, total, err := CartContents(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		items, total, err := CartContents(db, uint(userID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
	}
}
