package consultationControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/permissions"
	"github.com/tisbroker/insurance-api/serializers"
)

type CreateConsultationInput struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerContact string `json:"customer_contact" binding:"required"`
	ProductID       *uint  `json:"product_id"`
}

type MessageInput struct {
	Message string `json:"message" binding:"required"`
}

// loadConsultation fetches a request with the associations object-level
// permission checks need.
func loadConsultation(db *gorm.DB, id uint) (models.ConsultationRequest, error) {
	var cr models.ConsultationRequest
	err := db.Preload("Product.Category").First(&cr, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cr, models.ErrConsultationNotFound
	}
	return cr, err
}

// POST /consultations
func CreateConsultation(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input CreateConsultationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cr := models.ConsultationRequest{
			CustomerName:    input.CustomerName,
			CustomerContact: input.CustomerContact,
			Status:          models.ConsultationStatusNew,
		}
		if user != nil {
			cr.UserID = &user.ID
		}
		if input.ProductID != nil {
			var product models.Product
			if err := db.First(&product, *input.ProductID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			cr.ProductID = &product.ID
		}

		if err := db.Create(&cr).Error; err != nil {
			log.Error("consultation creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create consultation request"})
			return
		}

		// Route to a specialist right away when a product is linked.
		if err := AssignStaff(db, &cr); err != nil {
			log.Warn("auto-assignment failed",
				zap.Uint("consultation_id", cr.ID),
				zap.Error(err),
			)
		}

		c.JSON(http.StatusCreated, cr)
	}
}

// GET /consultations
// Staff and admin-class see every request; specialization filtering only
// applies at the object level. Customers see their own.
func ListConsultations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		query := db.Order("created_at DESC, id DESC")
		if user.Role == models.RoleCustomer {
			query = query.Where("user_id = ?", user.ID)
		}

		var requests []models.ConsultationRequest
		if err := query.Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation requests"})
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// GET /consultations/:id
func GetConsultation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation ID"})
			return
		}

		cr, err := loadConsultation(db, uint(id))
		if err != nil {
			if errors.Is(err, models.ErrConsultationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation request"})
			return
		}

		if !permissions.CanAccessConsultation(user, &cr) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusOK, cr)
	}
}

// PUT /consultations/:id/status
func UpdateConsultationStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation ID"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cr, err := loadConsultation(db, uint(id))
		if err != nil {
			if errors.Is(err, models.ErrConsultationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation request"})
			return
		}

		// Customers cannot drive the workflow status.
		if user.Role == models.RoleCustomer || !permissions.CanAccessConsultation(user, &cr) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		if err := db.Model(&cr).Update("status", input.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update consultation request"})
			return
		}
		c.JSON(http.StatusOK, cr)
	}
}

// GET /consultations/:id/messages
func ListMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation ID"})
			return
		}

		cr, err := loadConsultation(db, uint(id))
		if err != nil {
			if errors.Is(err, models.ErrConsultationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation request"})
			return
		}
		if !permissions.CanAccessConsultation(user, &cr) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		var messages []models.ChatMessage
		if err := db.Preload("Sender").
			Where("consultation_id = ?", cr.ID).
			Order("created_at ASC, id ASC").
			Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, serializers.ChatMessages(messages))
	}
}

// POST /consultations/:id/messages
// Append-only: any sender with access to the parent request may post.
func PostMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation ID"})
			return
		}

		var input MessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cr, err := loadConsultation(db, uint(id))
		if err != nil {
			if errors.Is(err, models.ErrConsultationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation request"})
			return
		}
		if !permissions.CanAccessConsultation(user, &cr) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		message := models.ChatMessage{
			ConsultationID: cr.ID,
			SenderID:       user.ID,
			Message:        input.Message,
		}
		if err := db.Create(&message).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}
		message.Sender = *user
		c.JSON(http.StatusCreated, serializers.ChatMessage(message))
	}
}
