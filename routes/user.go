package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/storelane/storefront-api/controllers/cart"
	orderControllers "github.com/storelane/storefront-api/controllers/order"
	userControllers "github.com/storelane/storefront-api/controllers/user"
	"github.com/storelane/storefront-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.POST("/balance", userControllers.TopUpBalanceHandler(db))
		userGroup.GET("/transactions", userControllers.GetTransactions(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCartHandler(db))
			cartGroup.POST("", cartControllers.AddToCartHandler(db))
			cartGroup.DELETE("/:product_id", cartControllers.RemoveFromCartHandler(db))
			cartGroup.DELETE("", cartControllers.ClearCartHandler(db))
		}

		userGroup.POST("/checkout", orderControllers.CheckoutHandler(db))
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
	}
}
