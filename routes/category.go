package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	categoryControllers "github.com/shoporia/ecommerce-api/controllers/category"
	"github.com/shoporia/ecommerce-api/middleware"
	"github.com/shoporia/ecommerce-api/store"
)

// SetupCategoryRoutes registers category reads publicly and mutations behind
// the signed-in admin owner chain.
func SetupCategoryRoutes(api *gin.RouterGroup, st store.Store, cfg *config.Config) {
	requireSignin := middleware.RequireSignin(cfg)
	isAuth := middleware.IsAuth(st)
	isAdmin := middleware.IsAdmin()

	api.GET("/categories", categoryControllers.List(st))
	api.GET("/category/:categoryId", categoryControllers.Read(st))

	api.POST("/category/create/:userId", requireSignin, isAuth, isAdmin, categoryControllers.Create(st))
	api.PUT("/category/:categoryId/:userId", requireSignin, isAuth, isAdmin, categoryControllers.Update(st))
	api.DELETE("/category/:categoryId/:userId", requireSignin, isAuth, isAdmin, categoryControllers.Remove(st))
}
