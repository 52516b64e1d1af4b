package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/storelane/storefront-api/controllers/admin"
	cartControllers "github.com/storelane/storefront-api/controllers/cart"
	orderControllers "github.com/storelane/storefront-api/controllers/order"
	productControllers "github.com/storelane/storefront-api/controllers/product"
	userControllers "github.com/storelane/storefront-api/controllers/user"
	"github.com/storelane/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		discountAdmin := adminGroup.Group("/discounts")
		{
			discountAdmin.POST("", adminControllers.SetDiscountHandler(db))
			discountAdmin.GET("", adminControllers.ListDiscountsHandler(db))
			discountAdmin.DELETE("/:id", adminControllers.DeleteDiscountHandler(db))
		}

		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(db))
			userAdmin.DELETE("/:id", adminControllers.DeleteUserHandler(db))
			userAdmin.POST("/:id/balance", adminControllers.AdjustBalanceHandler(db))
		}

		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCartHandler(db))

		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		adminGroup.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
	}
}
