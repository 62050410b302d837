package http

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryrank/backend/config"
)

// maxUploadMemory caps the multipart bytes held in memory per upload
const maxUploadMemory = 8 << 20

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(requestid.New())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, logger))
	v1.Use(TimeoutMiddleware(cfg.Server.RequestTimeout))
	{
		v1.GET("/info", handler.Info)

		v1.POST("/inventory/upload", handler.UploadInventory)

		recipes := v1.Group("/recipes")
		{
			recipes.POST("/search", handler.SearchRecipes)
			recipes.GET("/:id", handler.GetRecipe)
		}

		v1.POST("/ingredients/match", handler.MatchIngredient)
	}

	return router
}
