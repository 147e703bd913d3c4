package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	userControllers "github.com/shoporia/ecommerce-api/controllers/user"
	"github.com/shoporia/ecommerce-api/middleware"
	"github.com/shoporia/ecommerce-api/store"
)

// SetupUserRoutes registers profile endpoints; all require the caller to own
// the :userId profile.
func SetupUserRoutes(api *gin.RouterGroup, st store.Store, cfg *config.Config) {
	requireSignin := middleware.RequireSignin(cfg)
	isAuth := middleware.IsAuth(st)

	api.GET("/user/:userId", requireSignin, isAuth, userControllers.Read())
	api.PUT("/user/:userId", requireSignin, isAuth, userControllers.Update(st))
	api.GET("/orders/by/user/:userId", requireSignin, isAuth, userControllers.PurchaseHistory(st))
}
