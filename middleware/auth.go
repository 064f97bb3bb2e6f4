package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/auth"
	"github.com/tisbroker/insurance-api/models"
)

const userContextKey = "current_user"

// RequireAuth validates the bearer token and loads the account row so
// downstream handlers always see fresh role and is_active state.
func RequireAuth(db *gorm.DB, svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		claims, err := svc.ParseAccess(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			c.Abort()
			return
		}

		c.Set(userContextKey, &user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present but never
// rejects the request. Public read paths use it so serialization can
// key sensitive fields on the requester's role.
func OptionalAuth(db *gorm.DB, svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		claims, err := svc.ParseAccess(token)
		if err != nil {
			c.Next()
			return
		}
		var user models.User
		if err := db.First(&user, claims.UserID).Error; err == nil && user.IsActive {
			c.Set(userContextKey, &user)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth or
// OptionalAuth, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
