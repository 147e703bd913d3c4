package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	braintreeControllers "github.com/shoporia/ecommerce-api/controllers/braintree"
	"github.com/shoporia/ecommerce-api/middleware"
	"github.com/shoporia/ecommerce-api/store"
)

func SetupBraintreeRoutes(api *gin.RouterGroup, st store.Store, cfg *config.Config) {
	requireSignin := middleware.RequireSignin(cfg)
	isAuth := middleware.IsAuth(st)

	gateway := braintreeControllers.NewGateway(cfg)

	api.GET("/braintree/getToken/:userId", requireSignin, isAuth, braintreeControllers.GenerateTokenHandler(gateway))
	api.POST("/braintree/payment/:userId", requireSignin, isAuth, braintreeControllers.ProcessPaymentHandler(gateway))
}
