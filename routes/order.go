package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/tisbroker/insurance-api/controllers/order"
	"github.com/tisbroker/insurance-api/middleware"
)

// SetupOrderRoutes registers the order endpoints. Listing is role-scoped
// inside the handler; placement is open to any authenticated account.
func SetupOrderRoutes(r *gin.Engine, d Deps) {
	authed := middleware.RequireAuth(d.DB, d.AuthSvc)

	orderGroup := r.Group("/orders", authed)
	{
		orderGroup.GET("", orderControllers.ListOrdersHandler(d.DB))
		orderGroup.GET("/:id", orderControllers.GetOrderHandler(d.DB))
		orderGroup.POST("/buy_now", orderControllers.BuyNowHandler(d.DB, d.Log))
		orderGroup.POST("/checkout", orderControllers.CheckoutHandler(d.DB, d.Log))
	}
}
