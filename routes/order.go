package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	orderControllers "github.com/shoporia/ecommerce-api/controllers/order"
	"github.com/shoporia/ecommerce-api/middleware"
	"github.com/shoporia/ecommerce-api/store"
)

func SetupOrderRoutes(api *gin.RouterGroup, st store.Store, cfg *config.Config) {
	requireSignin := middleware.RequireSignin(cfg)
	isAuth := middleware.IsAuth(st)
	isAdmin := middleware.IsAdmin()

	api.POST("/order/create/:userId", requireSignin, isAuth, orderControllers.Create(st))

	api.GET("/order/list/:userId", requireSignin, isAuth, isAdmin, orderControllers.ListOrders(st))
	api.GET("/order/status-values/:userId", requireSignin, isAuth, isAdmin, orderControllers.GetStatusValues())
	api.PUT("/order/:orderId/status/:userId", requireSignin, isAuth, isAdmin, orderControllers.UpdateOrderStatus(st))

	// Live order feed for the admin dashboard.
	api.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
