package routes

import (
	"github.com/gin-gonic/gin"

	newsController "github.com/tisbroker/insurance-api/controllers/news"
	productcontroller "github.com/tisbroker/insurance-api/controllers/product"
	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/permissions"
)

// SetupCatalogRoutes registers the product, category and news endpoints.
// Reads are public; OptionalAuth lets the serializer show admin-only
// fields to admins hitting the public paths. Writes require the
// capability table.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	optional := middleware.OptionalAuth(d.DB, d.AuthSvc)
	authed := middleware.RequireAuth(d.DB, d.AuthSvc)

	productGroup := r.Group("/products")
	{
		productGroup.GET("", optional, productcontroller.GetProducts(d.DB))
		productGroup.GET("/featured", optional, productcontroller.GetFeaturedProducts(d.DB))
		productGroup.GET("/:id", optional, productcontroller.GetProductByID(d.DB))

		write := middleware.RequirePermission(d.Enforcer, permissions.ResProducts, permissions.ActWrite)
		productGroup.POST("", authed, write, productcontroller.CreateProduct(d.DB, d.Cfg.UploadDir, d.Log))
		productGroup.PUT("/:id", authed, write, productcontroller.UpdateProduct(d.DB))
		productGroup.DELETE("/:id", authed, write, productcontroller.DeleteProduct(d.DB))
		productGroup.POST("/:id/packages", authed, write, productcontroller.CreatePackage(d.DB))
	}

	packageWrite := middleware.RequirePermission(d.Enforcer, permissions.ResProducts, permissions.ActWrite)
	r.PUT("/packages/:id", authed, packageWrite, productcontroller.UpdatePackage(d.DB))
	r.DELETE("/packages/:id", authed, packageWrite, productcontroller.DeletePackage(d.DB))

	categoryGroup := r.Group("/categories")
	{
		categoryGroup.GET("", productcontroller.GetAllCategories(d.DB))
		categoryGroup.GET("/:id", productcontroller.GetCategoryByID(d.DB))

		write := middleware.RequirePermission(d.Enforcer, permissions.ResCategories, permissions.ActWrite)
		categoryGroup.POST("", authed, write, productcontroller.CreateCategory(d.DB))
		categoryGroup.PUT("/:id", authed, write, productcontroller.UpdateCategory(d.DB))
		categoryGroup.DELETE("/:id", authed, write, productcontroller.DeleteCategory(d.DB))
	}

	newsGroup := r.Group("/news")
	{
		newsGroup.GET("", newsController.GetNews(d.DB))
		newsGroup.GET("/:id", newsController.GetNewsByID(d.DB))

		write := middleware.RequirePermission(d.Enforcer, permissions.ResNews, permissions.ActWrite)
		newsGroup.POST("", authed, write, newsController.CreateNews(d.DB, d.Cfg.UploadDir))
		newsGroup.PUT("/:id", authed, write, newsController.UpdateNews(d.DB))
		newsGroup.DELETE("/:id", authed, write, newsController.DeleteNews(d.DB))
	}
}
