package dashboardController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/serializers"
)

type Summary struct {
	Revenue       decimal.Decimal         `json:"revenue"`
	TotalOrders   int64                   `json:"total_orders"`
	PendingOrders int64                   `json:"pending_orders"`
	RecentOrders  []serializers.OrderView `json:"recent_orders"`
}

// BuildSummary aggregates order state: revenue over active policies,
// order counts, and the five newest orders. Pure read, no side effects.
func BuildSummary(db *gorm.DB) (Summary, error) {
	summary := Summary{Revenue: decimal.Zero}

	var activeOrders []models.Order
	if err := db.Where("status = ?", models.OrderStatusActive).Find(&activeOrders).Error; err != nil {
		return summary, err
	}
	for _, o := range activeOrders {
		summary.Revenue = summary.Revenue.Add(o.TotalAmount)
	}

	if err := db.Model(&models.Order{}).Count(&summary.TotalOrders).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&summary.PendingOrders).Error; err != nil {
		return summary, err
	}

	var recent []models.Order
	if err := db.Preload("Items.Package.Product").
		Order("created_at DESC, id DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return summary, err
	}
	summary.RecentOrders = serializers.Orders(recent)

	return summary, nil
}

// GET /dashboard/summary (admin only)
func GetSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := BuildSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
