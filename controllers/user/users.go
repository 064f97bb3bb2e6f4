package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/models"
)

type UpdateProfileInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	AvatarURL   *string `json:"avatar_url"`
	CCCD        *string `json:"cccd"`
	CompanyName *string `json:"company_name"`
	TaxCode     *string `json:"tax_code"`
}

type AdminUpdateUserInput struct {
	Role           *string `json:"role"`
	Specialization *string `json:"specialization"`
	IsActive       *bool   `json:"is_active"`
	Email          *string `json:"email"`
}

// GET /users (admin only)
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC, id DESC")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GET /users/me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, user)
	}
}

// PUT /users/me
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.Phone != nil {
			user.Phone = input.Phone
		}
		if input.Address != nil {
			user.Address = *input.Address
		}
		if input.AvatarURL != nil {
			user.AvatarURL = *input.AvatarURL
		}
		if input.CCCD != nil {
			user.CCCD = *input.CCCD
		}
		if input.CompanyName != nil {
			user.CompanyName = *input.CompanyName
		}
		if input.TaxCode != nil {
			user.TaxCode = *input.TaxCode
		}

		if err := db.Save(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "phone already in use"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /users/:id (admin only)
// Role and email changes still pass through the org-email save hook.
func AdminUpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input AdminUpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Role != nil {
			role := models.Role(*input.Role)
			if !role.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
				return
			}
			user.Role = role
		}
		if input.Specialization != nil {
			spec := models.Specialization(*input.Specialization)
			if *input.Specialization != "" && !spec.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specialization"})
				return
			}
			user.Specialization = spec
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}

		if err := db.Save(&user).Error; err != nil {
			if errors.Is(err, models.ErrNotOrgEmail) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
