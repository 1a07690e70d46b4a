package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/address-similarity/app/controllers"
)

// SetupAPIRoutes registers the versioned query and admin routes.
func SetupAPIRoutes(router *gin.Engine, similarityController *controllers.SimilarityController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/similar", similarityController.FindSimilar)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/corpus/rebuild", adminController.RebuildAll)
			admin.POST("/corpus/rebuild-region", adminController.RebuildRegion)
			admin.GET("/jobs/:id", adminController.JobStatus)
			admin.GET("/stats", adminController.Stats)
			admin.POST("/cache/clear", adminController.ClearCache)
		}

		v1.GET("/health", similarityController.HealthCheck)
	}
}

// SetupHealthRoutes registers unversioned liveness endpoints.
func SetupHealthRoutes(router *gin.Engine, similarityController *controllers.SimilarityController) {
	router.GET("/health", similarityController.HealthCheck)
	router.GET("/ready", similarityController.HealthCheck)
	router.GET("/live", similarityController.HealthCheck)
}

// SetupAllRoutes wires middleware and every route group.
func SetupAllRoutes(router *gin.Engine, similarityController *controllers.SimilarityController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, similarityController)
	SetupAPIRoutes(router, similarityController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
