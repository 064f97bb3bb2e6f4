package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/models"
)

type RegisterInput struct {
	Username       string `json:"username"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	UserType       string `json:"user_type"`
	Specialization string `json:"specialization"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address        string `json:"address"`
	CCCD           string `json:"cccd"`
	CompanyName    string `json:"company_name"`
	TaxCode        string `json:"tax_code"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"` // username or phone
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

// POST /register
func Register(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		role := models.Role(input.Role)
		if input.Role == "" {
			role = models.RoleCustomer
		}
		if !role.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		if input.UserType != "" {
			if t := models.UserType(input.UserType); t != models.UserTypeIndividual && t != models.UserTypeEnterprise {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_type"})
				return
			}
		}
		if input.Specialization != "" && !models.Specialization(input.Specialization).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specialization"})
			return
		}

		// Frontend may omit username; fall back to the phone number.
		username := input.Username
		if username == "" {
			username = input.Phone
		}
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username or phone is required"})
			return
		}

		hash, err := HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		user := models.User{
			Username:       username,
			Email:          input.Email,
			PasswordHash:   hash,
			Role:           role,
			UserType:       models.UserType(input.UserType),
			Specialization: models.Specialization(input.Specialization),
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Address:        input.Address,
			CCCD:           input.CCCD,
			CompanyName:    input.CompanyName,
			TaxCode:        input.TaxCode,
			IsActive:       true,
		}
		if input.Phone != "" {
			phone := input.Phone
			user.Phone = &phone
		}

		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, models.ErrNotOrgEmail) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "username, email or phone already in use"})
				return
			}
			log.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		log.Info("user registered",
			zap.Uint("user_id", user.ID),
			zap.String("role", string(user.Role)),
		)
		c.JSON(http.StatusCreated, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
}

// POST /login
func Login(db *gorm.DB, svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("username = ? OR phone = ?", input.Username, input.Username).
			First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}
		if !user.IsActive || !CheckPassword(user.PasswordHash, input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}

		pair, err := svc.GenerateTokenPair(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access":  pair.Access,
			"refresh": pair.Refresh,
			"user_id": user.ID,
			"role":    user.Role,
			"email":   user.Email,
		})
	}
}

// POST /token/refresh
func Refresh(db *gorm.DB, svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RefreshInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		claims, err := svc.ParseRefresh(input.Refresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		pair, err := svc.GenerateTokenPair(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, pair)
	}
}

// BearerToken extracts the token from an Authorization header, accepting
// both "Bearer <token>" and a bare token (legacy clients).
func BearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}
