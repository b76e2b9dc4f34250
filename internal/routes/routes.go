package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inventory-api/internal/audit"
	"github.com/BruksfildServices01/inventory-api/internal/config"
	"github.com/BruksfildServices01/inventory-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/inventory-api/internal/infra/repository"
	"github.com/BruksfildServices01/inventory-api/internal/middleware"
	"github.com/BruksfildServices01/inventory-api/internal/storage"
	"github.com/BruksfildServices01/inventory-api/internal/tags"
)

// Tag suggestion is the only route with its own rate limit: 10 requests
// per 10 minutes per client IP.
const (
	suggestTagsLimit  = 10
	suggestTagsWindow = 10 * time.Minute
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	productRepo := infraRepo.NewProductGormRepository(db, auditLogger)

	imageStore := storage.NewS3Store(cfg)
	suggester := tags.NewSuggester(cfg)
	limiter := middleware.NewLimiter(redisClient, "ratelimit:suggest-tags:")

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg)
	productHandler := handlers.NewProductHandler(productRepo)
	productImageHandler := handlers.NewProductImageHandler(productRepo, imageStore)
	suggestTagsHandler := handlers.NewSuggestTagsHandler(suggester)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// ROUTES
	// ======================================================
	r.POST("/auth/login", authHandler.Login)

	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.POST("/products", productHandler.Create)
		secured.GET("/products", productHandler.List)
		secured.GET("/products/:id", productHandler.Get)
		secured.PUT("/products/:id", productHandler.Update)
		secured.DELETE("/products/:id", productHandler.Delete)
		secured.POST("/products/:id/image", productImageHandler.Upload)

		secured.POST(
			"/suggest-tags",
			middleware.RateLimitMiddleware(limiter, suggestTagsLimit, suggestTagsWindow),
			suggestTagsHandler.Suggest,
		)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
