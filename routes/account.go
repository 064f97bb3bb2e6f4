package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/tisbroker/insurance-api/controllers/cart"
	employeeControllers "github.com/tisbroker/insurance-api/controllers/employee"
	userControllers "github.com/tisbroker/insurance-api/controllers/user"
	"github.com/tisbroker/insurance-api/middleware"
)

// SetupAccountRoutes registers the self-scoped endpoints: profile, cart,
// and enterprise beneficiaries.
func SetupAccountRoutes(r *gin.Engine, d Deps) {
	authed := middleware.RequireAuth(d.DB, d.AuthSvc)

	userGroup := r.Group("/users", authed)
	{
		userGroup.GET("/me", userControllers.GetMe(d.DB))
		userGroup.PUT("/me", userControllers.UpdateMe(d.DB))
	}

	cartGroup := r.Group("/cart", authed)
	{
		cartGroup.GET("", cartControllers.GetCart(d.DB))
		cartGroup.POST("/add", cartControllers.AddToCart(d.DB))
		cartGroup.POST("/update_item", cartControllers.UpdateCartItem(d.DB))
	}

	employeeGroup := r.Group("/employees", authed)
	{
		employeeGroup.GET("", employeeControllers.ListEmployees(d.DB))
		employeeGroup.POST("", employeeControllers.CreateEmployee(d.DB))
		employeeGroup.DELETE("/:id", employeeControllers.DeleteEmployee(d.DB))
	}
}
