package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	"github.com/shoporia/ecommerce-api/store"
)

// SetupRoutes is the single entry point that wires up every resource group
// under the /api prefix.
func SetupRoutes(r *gin.Engine, st store.Store, cfg *config.Config) {
	api := r.Group("/api")

	SetupAuthRoutes(api, st, cfg)
	SetupUserRoutes(api, st, cfg)
	SetupCategoryRoutes(api, st, cfg)
	SetupProductRoutes(api, st, cfg)
	SetupOrderRoutes(api, st, cfg)
	SetupBraintreeRoutes(api, st, cfg)

	api.GET("/health", healthCheck(st))
}

func healthCheck(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"error":  "storage connection failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
