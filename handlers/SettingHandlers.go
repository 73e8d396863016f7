package handlers

import (
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
)

func parseCategory(c *gin.Context) (models.CatalogCategory, bool) {
	category, err := models.ParseCatalogCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown settings category", "details": err.Error()})
		return "", false
	}
	return category, true
}

// GetCatalog godoc
// @Summary      List entries of one settings catalog
// @Tags         settings
// @Param        category  path  string  true  "Catalog category (sectors, services, towers, responsibles, materials, situations)"
// @Success      200  {array}   models.CatalogItem
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/settings/{category} [get]
func GetCatalog(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := parseCategory(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, store.Catalog(category))
	}
}

func CreateCatalogItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := parseCategory(c)
		if !ok {
			return
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		item, err := store.AddCatalogItem(c.Request.Context(), category, body.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func RenameCatalogItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := parseCategory(c)
		if !ok {
			return
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		if err := store.RenameCatalogItem(c.Request.Context(), category, c.Param("id"), body.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename entry", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry renamed"})
	}
}

func DeleteCatalogItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := parseCategory(c)
		if !ok {
			return
		}
		if err := store.DeleteCatalogItem(c.Request.Context(), category, c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
	}
}
