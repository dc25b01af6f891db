package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"event_management/internal/domain"  // Category model
	"event_management/internal/service" // Category rules
	"event_management/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"` // Unique name
	Description string `json:"description" binding:"max=500"`   // Optional description
}

const categoriesCacheKey = utils.CategoriesCachePrefix + "all"

// invalidateCategories drops the cached category list, and event lists that embed categories
func invalidateCategories(c *gin.Context, rdb *redis.Client) {
	if err := utils.DeleteCache(c.Request.Context(), rdb, categoriesCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate category cache")
	}
	invalidateEvents(c.Request.Context(), rdb)
}

// ListCategoriesHandler returns every category
func ListCategoriesHandler(categories *service.CategoryService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Category
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, categoriesCacheKey, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		} else if err != nil {
			logrus.WithError(err).WithField("key", categoriesCacheKey).Warn("Cache read failed")
		}
		list, err := categories.ListCategories(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the response for future requests
		if err := utils.SetCache(ctx, rdb, categoriesCacheKey, list, ttl); err != nil {
			logrus.WithError(err).WithField("key", categoriesCacheKey).Warn("Cache write failed")
		}
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, list)
	}
}

// GetCategoryHandler returns one category
func GetCategoryHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		category, err := categories.GetCategory(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// CreateCategoryHandler creates a category
func CreateCategoryHandler(categories *service.CategoryService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		category, err := categories.CreateCategory(c.Request.Context(), service.CategoryInput{Name: req.Name, Description: req.Description})
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateCategories(c, rdb)
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategoryHandler renames or re-describes a category
func UpdateCategoryHandler(categories *service.CategoryService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		category, err := categories.UpdateCategory(c.Request.Context(), id, service.CategoryInput{Name: req.Name, Description: req.Description})
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateCategories(c, rdb)
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler deletes a category no event uses
func DeleteCategoryHandler(categories *service.CategoryService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := categories.DeleteCategory(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		invalidateCategories(c, rdb)
		c.Status(http.StatusNoContent)
	}
}
