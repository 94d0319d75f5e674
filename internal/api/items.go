package api

import (
	"context"                          // Context for Redis operations
	"errors"                           // Sentinel error matching
	"inventory_system/internal/domain" // Importing domain models
	"inventory_system/internal/stats"  // Aggregation engine
	"inventory_system/internal/utils"  // Utility functions
	"net/http"                         // HTTP status codes
	"strconv"                          // String conversion

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact decimal prices
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// currentAdmin resolves the authenticated caller to an Admin record.
// The second return is false when no admin profile backs the caller identity.
func currentAdmin(c *gin.Context, db *gorm.DB) (*domain.Admin, bool) {
	// Middleware may already have resolved the profile
	if v, ok := c.Get("admin"); ok {
		if admin, ok := v.(domain.Admin); ok {
			return &admin, true
		}
	}
	adminID, exists := c.Get("adminID") // Get adminID from context
	if !exists {
		return nil, false // No authenticated identity
	}
	var admin domain.Admin // Fetch admin from database
	if err := db.First(&admin, adminID).Error; err != nil {
		return nil, false // Authenticated caller has no admin record
	}
	return &admin, true
}

// invalidateCaches drops the given cached responses after a write
func invalidateCaches(c *gin.Context, keys ...string) {
	// The redis client is injected into the context by the route group
	if v, ok := c.Get("redisClient"); ok {
		if rdb, ok := v.(*redis.Client); ok {
			_ = utils.DeleteCache(context.Background(), rdb, keys...) // Invalidate cached responses
		}
	}
}

// DashboardHandler returns the global inventory summary
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()        // Context for Redis operations
		var cached stats.DashboardSummary  // Cached summary
		found, err := utils.GetCache(ctx, rdb, utils.DashboardCacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"summary": cached, "cached": true})
			return
		}
		// Compute the summary from the store
		summary, err := stats.Dashboard(db)
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Dashboard summary failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard summary"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.DashboardCacheKey, summary, utils.StatsCacheTTL) // Cache the summary
		c.JSON(http.StatusOK, gin.H{"summary": summary, "cached": false})                   // Return the summary
	}
}

// ListItemsHandler returns all items with statistics and the low stock sublist
func ListItemsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()       // Context for Redis operations
		var cached stats.ItemListResult   // Cached item list
		found, err := utils.GetCache(ctx, rdb, utils.ItemListCacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"items":           cached.Items,    // All items
				"stats":           cached.Stats,    // Collection aggregates
				"low_stock_items": cached.LowStock, // Low stock sublist
				"cached":          true,            // Indicate response is from cache
			})
			return
		}
		// Compute the list from the store
		result, err := stats.ItemList(db)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Item list failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.ItemListCacheKey, result, utils.StatsCacheTTL) // Cache the result
		c.JSON(http.StatusOK, gin.H{
			"items":           result.Items,    // All items
			"stats":           result.Stats,    // Collection aggregates
			"low_stock_items": result.LowStock, // Low stock sublist
			"cached":          false,           // Indicate response is not from cache
		})
	}
}

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required"`        // Item name
	Description string          `json:"description"`                    // Item description
	Price       decimal.Decimal `json:"price"`                          // Unit price
	Quantity    int             `json:"quantity" binding:"gte=0"`       // Units in stock
	CategoryID  uint            `json:"category_id" binding:"required"` // Category reference
	SupplierID  uint            `json:"supplier_id" binding:"required"` // Supplier reference
}

// CreateItemHandler creates a new item owned by the calling admin
func CreateItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Price must be non-negative
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
			return
		}
		// Resolve the caller to an admin profile
		admin, ok := currentAdmin(c, db)
		if !ok {
			// The write is not performed without an admin profile
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin profile not found for this user. Please contact support."})
			return
		}
		// Referenced category must exist
		var category domain.Category
		if err := db.First(&category, req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
		// Referenced supplier must exist
		var supplier domain.Supplier
		if err := db.First(&supplier, req.SupplierID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier not found"})
			return
		}
		// Construct and insert the item
		item := domain.Item{
			Name:        req.Name,        // Item name
			Description: req.Description, // Item description
			Price:       req.Price,       // Unit price
			Quantity:    req.Quantity,    // Units in stock
			CategoryID:  req.CategoryID,  // Category reference
			SupplierID:  req.SupplierID,  // Supplier reference
			CreatedByID: admin.ID,        // Calling admin
		}
		if err := db.Create(&item).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"admin_id": admin.ID,    // Calling admin
				"item":     req.Name,    // Item name
				"error":    err.Error(), // Error message
			}).Error("Failed to create item") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"admin_id": admin.ID, // Calling admin
			"item_id":  item.ID,  // New item ID
		}).Info("Item created")
		// Aggregates over items changed on every list view
		invalidateCaches(c, utils.ItemListCacheKey, utils.DashboardCacheKey, utils.CategoryCacheKey, utils.SupplierCacheKey)
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Item successfully added.", "item": item})
	}
}

// CategoryItemsHandler returns all items of one category
func CategoryItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse the category id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		category, items, err := stats.ItemsByCategory(db, uint(id)) // Fetch category and items
		if err != nil {
			// Unknown category id maps to not found
			if errors.Is(err, stats.ErrCategoryNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			logrus.WithFields(logrus.Fields{"category_id": id, "error": err.Error()}).Error("Category items failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category items"})
			return
		}
		// Return the category with its items
		c.JSON(http.StatusOK, gin.H{"category": category, "items": items})
	}
}
