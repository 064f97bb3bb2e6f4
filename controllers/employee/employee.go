package employeeControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/models"
)

type EmployeeInput struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// GET /employees
// Always scoped to the requesting enterprise account.
func ListEmployees(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var employees []models.EnterpriseEmployee
		if err := db.Where("enterprise_id = ?", user.ID).
			Order("created_at ASC, id ASC").
			Find(&employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
			return
		}
		c.JSON(http.StatusOK, employees)
	}
}

// POST /employees
// Ownership is forced to the requester regardless of payload.
func CreateEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input EmployeeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		employee := models.EnterpriseEmployee{
			EnterpriseID: user.ID,
			FullName:     input.FullName,
			Phone:        input.Phone,
			Email:        input.Email,
			Address:      input.Address,
		}
		if err := db.Create(&employee).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add employee"})
			return
		}
		c.JSON(http.StatusCreated, employee)
	}
}

// DELETE /employees/:id
// A foreign employee id is indistinguishable from a missing one.
func DeleteEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		result := db.Where("id = ? AND enterprise_id = ?", c.Param("id"), user.ID).
			Delete(&models.EnterpriseEmployee{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
	}
}
