package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/auth"
)

// SetupRoutes is the single entry point that wires up the auth, user, and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, throttle auth.Throttle) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, throttle)

	// Public catalog routes
	SetupShopRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
