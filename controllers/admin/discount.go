package adminControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/models"
)

var ErrProductNotFound = errors.New("product does not exist")

type SetDiscountRequest struct {
	ProductID  uint    `json:"product_id" binding:"required"`
	Percentage float64 `json:"percentage" binding:"required,gt=0,lte=100"`
}

// SetDiscount upserts the discount for a product, so a product never holds
// more than one discount row.
func SetDiscount(db *gorm.DB, req SetDiscountRequest) (models.Discount, error) {
	var discount models.Discount
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		err := tx.Where("product_id = ?", req.ProductID).First(&discount).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			discount = models.Discount{
				ProductID:  req.ProductID,
				Percentage: req.Percentage,
				CreatedAt:  time.Now(),
			}
			return tx.Create(&discount).Error
		case err != nil:
			return err
		default:
			discount.Percentage = req.Percentage
			return tx.Save(&discount).Error
		}
	})
	if err != nil {
		return models.Discount{}, err
	}
	return discount, nil
}

// POST /admin/discounts
func SetDiscountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		discount, err := SetDiscount(db, req)
		switch {
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set discount"})
		default:
			c.JSON(http.StatusOK, discount)
		}
	}
}

// GET /admin/discounts
func ListDiscountsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var discounts []models.Discount
		if err := db.Order("product_id").Find(&discounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discounts"})
			return
		}
		c.JSON(http.StatusOK, discounts)
	}
}

// DELETE /admin/discounts/:id
func DeleteDiscountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
			return
		}

		result := db.Delete(&models.Discount{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete discount"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Discount removed"})
	}
}
