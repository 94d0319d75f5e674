package main

import (
	"context"                              // context package is needed for Redis operations
	"inventory_system/internal/api"        // Custom package for API handlers
	"inventory_system/internal/config"     // Custom package for configuration
	"inventory_system/internal/middleware" // Custom package for middleware
	"log"                                  // log package is needed for logging

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db))         // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Inventory routes (protected by JWT, backed by an admin profile)
	inventoryGroup := r.Group("/")
	// Protect inventory routes, resolve the admin profile and inject the Redis client into context
	inventoryGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminProfileMiddleware(db), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	inventoryGroup.GET("/dashboard", api.DashboardHandler(db, redisClient))        // Global summary endpoint
	inventoryGroup.GET("/items", api.ListItemsHandler(db, redisClient))            // Item list endpoint
	inventoryGroup.POST("/items", api.CreateItemHandler(db))                       // Create item endpoint
	inventoryGroup.GET("/categories", api.ListCategoriesHandler(db, redisClient))  // Category list endpoint
	inventoryGroup.POST("/categories", api.CreateCategoryHandler(db))              // Create category endpoint
	inventoryGroup.GET("/categories/:id/items", api.CategoryItemsHandler(db))      // Items by category endpoint
	inventoryGroup.GET("/suppliers", api.ListSuppliersHandler(db, redisClient))    // Supplier list endpoint
	inventoryGroup.POST("/suppliers", api.CreateSupplierHandler(db))               // Create supplier endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
