package consultationControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/models"
)

// AssignStaff routes a request to a specialist. The category of the
// linked product maps to a staff specialization; among the matching
// active staff the one carrying the fewest open consultations wins, with
// the lowest user id breaking ties. A request with no product, or with no
// matching staff, stays unassigned in "new" status.
func AssignStaff(db *gorm.DB, cr *models.ConsultationRequest) error {
	if cr.ProductID == nil {
		return nil
	}

	var product models.Product
	if err := db.Preload("Category").First(&product, *cr.ProductID).Error; err != nil {
		return err
	}

	var staff models.User
	err := db.Model(&models.User{}).
		Select("users.*, COUNT(consultation_requests.id) AS open_load").
		Joins("LEFT JOIN consultation_requests ON consultation_requests.assigned_staff_id = users.id AND consultation_requests.status <> ?",
			models.ConsultationStatusClosed).
		Where("users.role = ? AND users.specialization = ? AND users.is_active = ?",
			models.RoleStaff, product.Category.SpecializationCode, true).
		Group("users.id").
		Order("open_load ASC, users.id ASC").
		First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return db.Model(cr).Updates(map[string]interface{}{
		"assigned_staff_id": staff.ID,
		"status":            models.ConsultationStatusAssigned,
	}).Error
}

// POST /consultations/:id/assign (admin only)
// Re-runs the routing for a request, e.g. after staff changes.
func AssignStaffHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation ID"})
			return
		}

		var cr models.ConsultationRequest
		if err := db.First(&cr, uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrConsultationNotFound.Error()})
			return
		}

		if err := AssignStaff(db, &cr); err != nil {
			log.Error("assignment failed", zap.Uint("consultation_id", cr.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign staff"})
			return
		}

		if err := db.First(&cr, cr.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load consultation request"})
			return
		}
		c.JSON(http.StatusOK, cr)
	}
}
