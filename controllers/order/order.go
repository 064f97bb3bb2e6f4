package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/serializers"
)

type BuyNowInput struct {
	PackageID       uint   `json:"package_id" binding:"required"`
	Quantity        int    `json:"quantity"`
	BeneficiaryNote string `json:"beneficiary_note"`
}

type CheckoutInput struct {
	BeneficiaryNote string `json:"beneficiary_note"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// codeAttempts bounds the retry loop on order code collisions. With
// uuid-derived codes a second round is already rare.
const codeAttempts = 3

func generateOrderCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + raw[:12]
}

// BuyNow is the direct-purchase shortcut bypassing the cart: one package,
// one order in pending status, unit price snapshotted into the item.
func BuyNow(db *gorm.DB, userID uint, packageID uint, quantity int, note string) (models.Order, error) {
	var order models.Order
	if quantity <= 0 {
		quantity = 1
	}

	var pkg models.ProductPackage
	if err := db.First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, models.ErrPackageNotFound
		}
		return order, err
	}

	total := pkg.Price.Mul(decimal.NewFromInt(int64(quantity)))

	var err error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		order = models.Order{
			Code:            generateOrderCode(),
			UserID:          userID,
			Status:          models.OrderStatusPending,
			TotalAmount:     total,
			BeneficiaryNote: note,
			Items: []models.OrderItem{{
				PackageID: pkg.ID,
				Quantity:  quantity,
				UnitPrice: pkg.Price,
			}},
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&order).Error
		})
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return models.Order{}, err
	}

	return order, db.Preload("Items.Package.Product").First(&order, order.ID).Error
}

// Checkout converts the user's cart into an order: items priced at the
// current package price (snapshotted), cart cleared, all in one
// transaction so a failure leaves the cart untouched.
func Checkout(db *gorm.DB, userID uint, note string) (models.Order, error) {
	var order models.Order

	var cart models.Cart
	if err := db.Preload("Items.Package").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, models.ErrEmptyCart
		}
		return order, err
	}
	if len(cart.Items) == 0 {
		return order, models.ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		total = total.Add(ci.Package.Price.Mul(decimal.NewFromInt(int64(ci.Quantity))))
		items = append(items, models.OrderItem{
			PackageID: ci.PackageID,
			Quantity:  ci.Quantity,
			UnitPrice: ci.Package.Price,
		})
	}

	var err error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		order = models.Order{
			Code:            generateOrderCode(),
			UserID:          userID,
			Status:          models.OrderStatusPending,
			TotalAmount:     total,
			BeneficiaryNote: note,
			Items:           items,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
		})
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return models.Order{}, err
	}

	return order, db.Preload("Items.Package.Product").First(&order, order.ID).Error
}

// TransitionStatus moves an order through its lifecycle. The UPDATE is
// guarded by the expected current status, so two admins racing on the
// same order cannot apply conflicting transitions.
func TransitionStatus(db *gorm.DB, orderID uint, to models.OrderStatus, adminID uint) (models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, models.ErrOrderNotFound
		}
		return order, err
	}

	if !order.Status.CanTransition(to) {
		return order, models.ErrInvalidTransition
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(map[string]interface{}{
			"status":          to,
			"processed_by_id": adminID,
		})
	if res.Error != nil {
		return order, res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else moved the order first.
		return order, models.ErrInvalidTransition
	}

	return order, db.Preload("Items.Package.Product").First(&order, order.ID).Error
}

// ListOrders scopes the query by role: admin-class identities see every
// order, everyone else only their own. The filter is applied in SQL, not
// on the serialized response.
func ListOrders(db *gorm.DB, requester *models.User) ([]models.Order, error) {
	query := db.Preload("Items.Package.Product").Order("created_at DESC, id DESC")
	if !requester.Role.IsAdmin() {
		query = query.Where("user_id = ?", requester.ID)
	}
	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}

// POST /orders/buy_now
func BuyNowHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input BuyNowInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := BuyNow(db, user.ID, input.PackageID, input.Quantity, input.BeneficiaryNote)
		if err != nil {
			if errors.Is(err, models.ErrPackageNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": models.ErrPackageNotFound.Error()})
				return
			}
			log.Error("buy_now failed", zap.Uint("user_id", user.ID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to place order"})
			return
		}

		log.Info("order placed",
			zap.String("code", order.Code),
			zap.Uint("user_id", user.ID),
		)
		c.JSON(http.StatusCreated, serializers.Order(order))
	}
}

// POST /orders/checkout
func CheckoutHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input CheckoutInput
		_ = c.ShouldBindJSON(&input)

		order, err := Checkout(db, user.ID, input.BeneficiaryNote)
		if err != nil {
			if errors.Is(err, models.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptyCart.Error()})
				return
			}
			log.Error("checkout failed", zap.Uint("user_id", user.ID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to place order"})
			return
		}

		log.Info("order placed from cart",
			zap.String("code", order.Code),
			zap.Uint("user_id", user.ID),
		)
		c.JSON(http.StatusCreated, serializers.Order(order))
	}
}

// GET /orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		orders, err := ListOrders(db, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, serializers.Orders(orders))
	}
}

// GET /orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		query := db.Preload("Items.Package.Product").Where("id = ?", uint(id))
		if !user.Role.IsAdmin() {
			query = query.Where("user_id = ?", user.ID)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, serializers.Order(order))
	}
}

// PUT /orders/:id/status (admin only)
func UpdateStatusHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := middleware.CurrentUser(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus := models.OrderStatus(strings.ToLower(input.Status))
		if !newStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		order, err := TransitionStatus(db, uint(id), newStatus, admin.ID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": models.ErrOrderNotFound.Error()})
			case errors.Is(err, models.ErrInvalidTransition):
				c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidTransition.Error()})
			default:
				log.Error("status update failed", zap.Uint64("order_id", id), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			}
			return
		}

		log.Info("order status updated",
			zap.String("code", order.Code),
			zap.String("status", string(order.Status)),
			zap.Uint("processed_by", admin.ID),
		)
		c.JSON(http.StatusOK, serializers.Order(order))
	}
}
