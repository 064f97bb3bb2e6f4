package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/serializers"
)

type AddItemInput struct {
	PackageID uint `json:"package_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateItemInput struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// GetOrCreateCart lazily provisions the user's single cart. The unique
// index on user_id keeps concurrent first accesses from creating two.
func GetOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		err = db.Where("user_id = ?", userID).First(&cart).Error
	}
	return cart, err
}

// AddItem places quantity of a package into the user's cart. An existing
// (cart, package) row has its quantity incremented atomically via the
// unique-index upsert; concurrent adds never produce duplicate rows.
func AddItem(db *gorm.DB, userID, packageID uint, quantity int) (models.CartItem, error) {
	var item models.CartItem

	var pkg models.ProductPackage
	if err := db.First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, models.ErrPackageNotFound
		}
		return item, err
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return item, err
	}

	item = models.CartItem{
		CartID:    cart.ID,
		PackageID: pkg.ID,
		Quantity:  quantity,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "package_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(&item).Error
	if err != nil {
		return item, err
	}

	// Reload to return the accumulated quantity after an upsert.
	err = db.Preload("Package.Product").
		Where("cart_id = ? AND package_id = ?", cart.ID, pkg.ID).
		First(&item).Error
	return item, err
}

// UpdateItem overwrites an item's quantity, or deletes the row when the
// quantity drops to zero or below. Ownership is part of the lookup:
// another user's item id behaves exactly like a missing one.
func UpdateItem(db *gorm.DB, userID, itemID uint, quantity int) error {
	var item models.CartItem
	err := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrCartItemNotFound
		}
		return err
	}

	if quantity <= 0 {
		return db.Delete(&item).Error
	}

	item.Quantity = quantity
	return db.Save(&item).Error
}

// ListCart loads the cart with current package prices. The total is
// recomputed on every read since package prices can change under items.
func ListCart(db *gorm.DB, userID uint) ([]models.CartItem, decimal.Decimal, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	var items []models.CartItem
	if err := db.Preload("Package.Product").
		Where("cart_id = ?", cart.ID).
		Order("added_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Package.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return items, total, nil
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		items, total, err := ListCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		views := make([]serializers.CartItemView, 0, len(items))
		for _, item := range items {
			views = append(views, serializers.CartItem(item))
		}
		c.JSON(http.StatusOK, gin.H{
			"items":       views,
			"total_price": total,
			"total_items": len(items),
		})
	}
}

// POST /cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity <= 0 {
			input.Quantity = 1
		}

		item, err := AddItem(db, user.ID, input.PackageID, input.Quantity)
		if err != nil {
			if errors.Is(err, models.ErrPackageNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product Package not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "Added to cart", "item": serializers.CartItem(item)})
	}
}

// POST /cart/update_item
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := UpdateItem(db, user.ID, input.ItemID, input.Quantity); err != nil {
			if errors.Is(err, models.ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "Cart updated"})
	}
}
