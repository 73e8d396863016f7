package handlers

import (
	"net/http"

	"backend/cache"

	"github.com/gin-gonic/gin"
)

// ForceRefresh godoc
// @Summary      Reload all collections from the remote store
// @Tags         sync
// @Success      200  {object}  models.RefreshReport
// @Router       /api/sync/refresh [post]
func ForceRefresh(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := store.RefreshAll(c.Request.Context())
		c.JSON(http.StatusOK, report)
	}
}

// ClearAll godoc
// @Summary      Wipe the transactional collections, keeping settings catalogs
// @Tags         sync
// @Success      200  {object}  models.MessageResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/clear_all [post]
func ClearAll(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.ClearAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear all data", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
	}
}
