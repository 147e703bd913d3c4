package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	authControllers "github.com/shoporia/ecommerce-api/controllers/auth"
	"github.com/shoporia/ecommerce-api/store"
)

// SetupAuthRoutes registers the public signup/signin/signout endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, st store.Store, cfg *config.Config) {
	api.POST("/signup", authControllers.Signup(st))
	api.POST("/signin", authControllers.Signin(st, cfg))
	api.GET("/signout", authControllers.Signout())
}
