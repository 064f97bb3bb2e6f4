package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/serializers"
)

type PackageInput struct {
	DurationLabel string          `json:"duration_label" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	DurationDays  int             `json:"duration_days" binding:"required"`
}

// POST /products/:id/packages (admin only)
func CreatePackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input PackageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}

		pkg := models.ProductPackage{
			ProductID:     product.ID,
			DurationLabel: input.DurationLabel,
			Price:         input.Price,
			DurationDays:  input.DurationDays,
		}
		if err := db.Create(&pkg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
			return
		}
		c.JSON(http.StatusCreated, serializers.Package(pkg))
	}
}

// PUT /packages/:id (admin only)
func UpdatePackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pkg models.ProductPackage
		if err := db.First(&pkg, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}

		var input struct {
			DurationLabel string           `json:"duration_label"`
			Price         *decimal.Decimal `json:"price"`
			DurationDays  *int             `json:"duration_days"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.DurationLabel != "" {
			pkg.DurationLabel = input.DurationLabel
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
				return
			}
			pkg.Price = *input.Price
		}
		if input.DurationDays != nil {
			pkg.DurationDays = *input.DurationDays
		}

		if err := db.Save(&pkg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update package"})
			return
		}
		c.JSON(http.StatusOK, serializers.Package(pkg))
	}
}

// DELETE /packages/:id (admin only)
func DeletePackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pkg models.ProductPackage
		if err := db.First(&pkg, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		if err := db.Delete(&pkg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete package"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
	}
}
