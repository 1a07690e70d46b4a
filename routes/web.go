package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes registers the landing and docs pages.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Address Similarity Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Address Similarity API v1",
				"endpoints": map[string]string{
					"similar":        "POST /v1/addresses/similar",
					"rebuild":        "POST /v1/admin/corpus/rebuild",
					"rebuild_region": "POST /v1/admin/corpus/rebuild-region",
					"job_status":     "GET /v1/admin/jobs/:id",
					"stats":          "GET /v1/admin/stats",
					"health":         "GET /v1/health",
				},
			})
		})
	}
}
