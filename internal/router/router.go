// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hardwarehub/storefront-backend/internal/cache"
	"github.com/hardwarehub/storefront-backend/internal/config"
	"github.com/hardwarehub/storefront-backend/internal/handlers"
	"github.com/hardwarehub/storefront-backend/internal/middleware"
	"github.com/hardwarehub/storefront-backend/internal/services"
	"github.com/hardwarehub/storefront-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, *services.CleanupService, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanupService := services.NewCleanupService(
		storageService,
		time.Duration(cfg.Cleanup.RetryInterval)*time.Second,
		cfg.Cleanup.MaxAttempts,
	)

	listCache := cache.New(cfg.Redis)

	productService := services.NewProductService(db, storageService, cleanupService, listCache)
	categoryService := services.NewCategoryService(db, listCache)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, categoryService, listCache)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Product catalog and admin console
	products := r.Group("/products")
	{
		products.GET("/categories", productHandler.GetCategories)
		products.POST("/categories", middleware.AuthRequired(), middleware.AdminRequired(), productHandler.CreateCategory)

		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)

		admin := products.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("", middleware.UploadRateLimit(), productHandler.CreateProduct)
			admin.PATCH("/:id", middleware.UploadRateLimit(), productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	// Customer profiles
	users := r.Group("/users")
	users.Use(middleware.AuthRequired())
	{
		users.GET("/:cognitoId", userHandler.GetUser)
		users.PUT("/:cognitoId", userHandler.UpdateUser)
		users.POST("", userHandler.CreateUser)
		users.POST("/:cognitoId/favorites/:productId", userHandler.AddFavorite)
		users.DELETE("/:cognitoId/favorites/:productId", userHandler.RemoveFavorite)
	}

	// Admin profiles
	admins := r.Group("/admins")
	admins.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admins.GET("/:cognitoId", adminHandler.GetAdmin)
		admins.PUT("/:cognitoId", adminHandler.UpdateAdmin)
		admins.POST("", adminHandler.CreateAdmin)
	}

	return r, cleanupService, nil
}
