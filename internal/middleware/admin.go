package middleware

import (
	"inventory_system/internal/domain" // Importing domain models
	"net/http"                         // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AdminProfileMiddleware resolves the authenticated caller to an Admin record on each request
func AdminProfileMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, exists := c.Get("adminID") // Get adminID from context
		// Check if adminID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var admin domain.Admin // Fetch admin from database
		if err := db.First(&admin, adminID).Error; err != nil {
			// If no admin profile backs this token, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin profile not found for this user. Please contact support."})
			return
		}
		c.Set("admin", admin) // Store the resolved admin for handlers
		c.Next()              // Proceed to the next handler
	}
}
