package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/auth"
	"github.com/tisbroker/insurance-api/config"
	"github.com/tisbroker/insurance-api/permissions"
)

// Deps carries everything route registration needs.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *zap.Logger
	AuthSvc  *auth.Service
	Enforcer *permissions.Enforcer
}

// SetupRoutes is the single entry point wiring up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupAuthRoutes(r, d)
	SetupCatalogRoutes(r, d)
	SetupAccountRoutes(r, d)
	SetupOrderRoutes(r, d)
	SetupConsultationRoutes(r, d)
	SetupAdminRoutes(r, d)
}
