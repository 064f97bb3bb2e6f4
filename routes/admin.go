package routes

import (
	"github.com/gin-gonic/gin"

	consultationControllers "github.com/tisbroker/insurance-api/controllers/consultation"
	dashboardController "github.com/tisbroker/insurance-api/controllers/dashboard"
	orderControllers "github.com/tisbroker/insurance-api/controllers/order"
	userControllers "github.com/tisbroker/insurance-api/controllers/user"
	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/permissions"
)

// SetupAdminRoutes registers the admin-class surface: user management,
// order processing, consultation re-assignment, dashboard and reporting.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	authed := middleware.RequireAuth(d.DB, d.AuthSvc)

	manageUsers := middleware.RequirePermission(d.Enforcer, permissions.ResUsers, permissions.ActManage)
	r.GET("/users", authed, manageUsers, userControllers.GetAllUsers(d.DB))
	r.PUT("/users/:id", authed, manageUsers, userControllers.AdminUpdateUser(d.DB))

	manageOrders := middleware.RequirePermission(d.Enforcer, permissions.ResOrders, permissions.ActManage)
	r.PUT("/orders/:id/status", authed, manageOrders, orderControllers.UpdateStatusHandler(d.DB, d.Log))
	r.GET("/orders/export-excel", authed, manageOrders, orderControllers.ExportOrdersToExcel(d.DB))

	manageConsultations := middleware.RequirePermission(d.Enforcer, permissions.ResConsultations, permissions.ActManage)
	r.POST("/consultations/:id/assign", authed, manageConsultations, consultationControllers.AssignStaffHandler(d.DB, d.Log))

	readDashboard := middleware.RequirePermission(d.Enforcer, permissions.ResDashboard, permissions.ActRead)
	r.GET("/dashboard/summary", authed, readDashboard, dashboardController.GetSummary(d.DB))
}
