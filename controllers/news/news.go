package newsController

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/models"
)

// GET /news
func GetNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.News
		if err := db.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /news/:id
func GetNewsByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.News
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// POST /news (admin only)
// Multipart: title, content, optional image file.
func CreateNews(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		content := c.PostForm("content")
		if title == "" || content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
			return
		}

		var imageURL string
		if file, err := c.FormFile("image"); err == nil {
			saveDir := filepath.Join(uploadDir, "news")
			if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
				return
			}
			filename := newsFilename(file.Filename)
			if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			imageURL = "/uploads/news/" + filename
		}

		item := models.News{
			Title:    title,
			Content:  content,
			ImageURL: imageURL,
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create news"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func newsFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
}

// PUT /news/:id (admin only)
func UpdateNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.News
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}

		if v := c.PostForm("title"); v != "" {
			item.Title = v
		}
		if v := c.PostForm("content"); v != "" {
			item.Content = v
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update news"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /news/:id (admin only)
func DeleteNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.News
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete news"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
	}
}
