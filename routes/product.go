package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	productcontroller "github.com/shoporia/ecommerce-api/controllers/product"
	"github.com/shoporia/ecommerce-api/middleware"
	"github.com/shoporia/ecommerce-api/store"
)

func SetupProductRoutes(api *gin.RouterGroup, st store.Store, cfg *config.Config) {
	requireSignin := middleware.RequireSignin(cfg)
	isAuth := middleware.IsAuth(st)
	isAdmin := middleware.IsAdmin()

	api.GET("/products", productcontroller.List(st))
	api.GET("/products/search", productcontroller.ListSearch(st))
	api.GET("/products/related/:productId", productcontroller.ListRelated(st))
	api.GET("/products/categories", productcontroller.ListCategories(st))
	api.POST("/products/by/search", productcontroller.ListBySearch(st))

	api.GET("/product/:productId", productcontroller.Read(st))
	api.GET("/product/photo/:productId", productcontroller.Photo(st))

	api.GET("/products/export-excel/:userId", requireSignin, isAuth, isAdmin, productcontroller.ExportToExcel(st))
	api.POST("/product/create/:userId", requireSignin, isAuth, isAdmin, productcontroller.Create(st))
	api.PUT("/product/:productId/:userId", requireSignin, isAuth, isAdmin, productcontroller.Update(st))
	api.DELETE("/product/:productId/:userId", requireSignin, isAuth, isAdmin, productcontroller.Remove(st))
}
