package routes

import (
	"github.com/gin-gonic/gin"

	consultationControllers "github.com/tisbroker/insurance-api/controllers/consultation"
	"github.com/tisbroker/insurance-api/middleware"
)

// SetupConsultationRoutes registers the consultation and chat endpoints.
// Intake is open to anonymous visitors; everything else needs an account.
// Visibility rules live in the handlers and the object-level predicate.
func SetupConsultationRoutes(r *gin.Engine, d Deps) {
	authed := middleware.RequireAuth(d.DB, d.AuthSvc)
	optional := middleware.OptionalAuth(d.DB, d.AuthSvc)

	r.POST("/consultations", optional, consultationControllers.CreateConsultation(d.DB, d.Log))

	group := r.Group("/consultations", authed)
	{
		group.GET("", consultationControllers.ListConsultations(d.DB))
		group.GET("/:id", consultationControllers.GetConsultation(d.DB))
		group.PUT("/:id/status", consultationControllers.UpdateConsultationStatus(d.DB))
		group.GET("/:id/messages", consultationControllers.ListMessages(d.DB))
		group.POST("/:id/messages", consultationControllers.PostMessage(d.DB))
	}
}
