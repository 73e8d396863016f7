package handlers

import (
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
)

func GetPurchases(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Purchases())
	}
}

func CreatePurchase(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.PurchaseRequest
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase payload", "details": err.Error()})
			return
		}
		if p.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
			return
		}
		if p.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must not be negative"})
			return
		}
		added, err := store.AddPurchase(c.Request.Context(), p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, added)
	}
}

func UpdatePurchase(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch payload", "details": err.Error()})
			return
		}
		if err := store.UpdatePurchase(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purchase", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Purchase updated"})
	}
}

func DeletePurchase(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeletePurchase(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted"})
	}
}
