package api

import (
	"context"                          // Context for Redis operations
	"inventory_system/internal/domain" // Importing domain models
	"inventory_system/internal/stats"  // Aggregation engine
	"inventory_system/internal/utils"  // Utility functions
	"net/http"                         // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ListCategoriesHandler returns all categories annotated with item aggregates
func ListCategoriesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()        // Context for Redis operations
		var cached []stats.CategorySummary // Cached category list
		found, err := utils.GetCache(ctx, rdb, utils.CategoryCacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"categories": cached, "cached": true})
			return
		}
		// Compute the aggregates from the store
		summaries, err := stats.CategorySummaries(db)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Category list failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.CategoryCacheKey, summaries, utils.StatsCacheTTL) // Cache the result
		c.JSON(http.StatusOK, gin.H{"categories": summaries, "cached": false})               // Return the list
	}
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"` // Category name
	Description string `json:"description"`             // Category description
}

// CreateCategoryHandler creates a new category owned by the calling admin
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Resolve the caller to an admin profile
		admin, ok := currentAdmin(c, db)
		if !ok {
			// The write is not performed without an admin profile
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin profile not found for this user. Please contact support."})
			return
		}
		category := domain.Category{
			Name:        req.Name,        // Category name
			Description: req.Description, // Category description
			CreatedByID: admin.ID,        // Calling admin
		}
		if err := db.Create(&category).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"admin_id": admin.ID,    // Calling admin
				"category": req.Name,    // Category name
				"error":    err.Error(), // Error message
			}).Error("Failed to create category") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		invalidateCaches(c, utils.CategoryCacheKey, utils.DashboardCacheKey) // Category aggregates changed
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Category successfully added.", "category": category})
	}
}

// ListSuppliersHandler returns all suppliers annotated with item aggregates
func ListSuppliersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()        // Context for Redis operations
		var cached []stats.SupplierSummary // Cached supplier list
		found, err := utils.GetCache(ctx, rdb, utils.SupplierCacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"suppliers": cached, "cached": true})
			return
		}
		// Compute the aggregates from the store
		summaries, err := stats.SupplierSummaries(db)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Supplier list failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.SupplierCacheKey, summaries, utils.StatsCacheTTL) // Cache the result
		c.JSON(http.StatusOK, gin.H{"suppliers": summaries, "cached": false})                // Return the list
	}
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required"` // Supplier name
	ContactInfo string `json:"contact_info"`            // Supplier contact details
}

// CreateSupplierHandler creates a new supplier owned by the calling admin
func CreateSupplierHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSupplierRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Resolve the caller to an admin profile
		admin, ok := currentAdmin(c, db)
		if !ok {
			// The write is not performed without an admin profile
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin profile not found for this user. Please contact support."})
			return
		}
		supplier := domain.Supplier{
			Name:        req.Name,        // Supplier name
			ContactInfo: req.ContactInfo, // Supplier contact details
			CreatedByID: admin.ID,        // Calling admin
		}
		if err := db.Create(&supplier).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"admin_id": admin.ID,    // Calling admin
				"supplier": req.Name,    // Supplier name
				"error":    err.Error(), // Error message
			}).Error("Failed to create supplier") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
			return
		}
		invalidateCaches(c, utils.SupplierCacheKey, utils.DashboardCacheKey) // Supplier aggregates changed
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Supplier successfully added.", "supplier": supplier})
	}
}
