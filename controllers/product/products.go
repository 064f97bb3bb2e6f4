package productcontroller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/middleware"
	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/serializers"
)

// GET /products
// Public; search covers product name and category name.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := middleware.CurrentUser(c)

		query := db.Model(&models.Product{}).
			Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") }).
			Preload("Packages")

		if search := c.Query("search"); search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.
				Joins("JOIN categories ON categories.id = products.category_id").
				Where("LOWER(products.name) LIKE ? OR LOWER(categories.name) LIKE ?", likePattern, likePattern)
		}
		if categoryID := c.Query("category_id"); categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			query = query.Where("products.category_id = ?", uint(cid))
		}
		if audience := c.Query("target_audience"); audience != "" {
			query = query.Where("products.target_audience = ?", audience)
		}

		var products []models.Product
		if err := query.Order("products.created_at DESC, products.id DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, serializers.Products(products, requester))
	}
}

// GET /products/featured
// Creation-time order keeps the listing deterministic.
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := middleware.CurrentUser(c)

		var products []models.Product
		if err := db.
			Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") }).
			Preload("Packages").
			Where("is_featured = ?", true).
			Order("created_at ASC, id ASC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, serializers.Products(products, requester))
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := middleware.CurrentUser(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.
			Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") }).
			Preload("Packages").
			First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, serializers.Product(product, requester))
	}
}

// CreateProduct handles the multipart create: base record plus an optional
// batch of gallery uploads under "uploaded_images". The product row and
// every image row commit together or not at all.
func CreateProduct(db *gorm.DB, uploadDir string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		providerName := c.PostForm("provider_name")
		categoryIDStr := c.PostForm("category_id")
		if name == "" || providerName == "" || categoryIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, provider_name and category_id are required"})
			return
		}
		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}

		var category models.Category
		if err := db.First(&category, uint(categoryID)).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		product := models.Product{
			CategoryID:     category.ID,
			Name:           name,
			ProviderName:   providerName,
			Description:    c.PostForm("description"),
			IsFeatured:     c.PostForm("is_featured") == "true",
			IsPriceHidden:  c.PostForm("is_price_hidden") == "true",
			TargetAudience: models.TargetAudience(c.PostForm("target_audience")),
		}

		form, _ := c.MultipartForm()
		var uploads []*multipartFile
		if form != nil {
			for i, file := range form.File["uploaded_images"] {
				uploads = append(uploads, &multipartFile{header: file, position: i})
			}
		}

		saveDir := filepath.Join(uploadDir, "products")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			for _, up := range uploads {
				filename := uploadFilename(up.header.Filename)
				savePath := filepath.Join(saveDir, filename)
				if err := c.SaveUploadedFile(up.header, savePath); err != nil {
					return err
				}
				image := models.ProductImage{
					ProductID: product.ID,
					ImageURL:  "/uploads/products/" + filename,
					Position:  up.position,
				}
				if err := tx.Create(&image).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Error("product creation failed", zap.String("name", name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		if err := db.Preload("Images").Preload("Packages").First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}
		c.JSON(http.StatusCreated, serializers.Product(product, middleware.CurrentUser(c)))
	}
}

// PUT /products/:id (admin only)
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("provider_name"); v != "" {
			product.ProviderName = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("category_id"); v != "" {
			cid, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, uint(cid)).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = category.ID
		}
		if v := c.PostForm("is_featured"); v != "" {
			product.IsFeatured = v == "true"
		}
		if v := c.PostForm("is_price_hidden"); v != "" {
			product.IsPriceHidden = v == "true"
		}
		if v := c.PostForm("target_audience"); v != "" {
			product.TargetAudience = models.TargetAudience(v)
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		if err := db.Preload("Images").Preload("Packages").First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}
		c.JSON(http.StatusOK, serializers.Product(product, middleware.CurrentUser(c)))
	}
}

// DELETE /products/:id (admin only)
// Cascades to the product's images and packages.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductPackage{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

type multipartFile struct {
	header   *multipart.FileHeader
	position int
}

func uploadFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
}
