package handlers

import (
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
)

// GetVisits godoc
// @Summary      List technical visits
// @Tags         visits
// @Success      200  {array}  models.Visit
// @Router       /api/visits [get]
func GetVisits(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Visits())
	}
}

// CreateVisit godoc
// @Summary      Create a technical visit
// @Tags         visits
// @Param        visit  body  models.Visit  true  "Visit"
// @Success      201  {object}  models.Visit
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/visits [post]
func CreateVisit(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var visit models.Visit
		if err := c.ShouldBindJSON(&visit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visit payload", "details": err.Error()})
			return
		}
		if visit.Unit == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit is required"})
			return
		}
		added, err := store.AddVisit(c.Request.Context(), visit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create visit", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, added)
	}
}

func UpdateVisit(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch payload", "details": err.Error()})
			return
		}
		if err := store.UpdateVisit(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update visit", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Visit updated"})
	}
}

func DeleteVisit(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeleteVisit(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete visit", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Visit deleted"})
	}
}
