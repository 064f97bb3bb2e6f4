package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tisbroker/insurance-api/auth"
)

// SetupAuthRoutes registers the public account endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	r.POST("/register", auth.Register(d.DB, d.Log))
	r.POST("/login", auth.Login(d.DB, d.AuthSvc))
	r.POST("/token/refresh", auth.Refresh(d.DB, d.AuthSvc))
}
