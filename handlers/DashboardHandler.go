package handlers

import (
	"net/http"

	"backend/cache"

	"github.com/gin-gonic/gin"
)

// GetDashboardSummary godoc
// @Summary      Dashboard card counters
// @Tags         dashboard
// @Success      200  {object}  models.DashboardSummary
// @Router       /api/dashboard/summary [get]
func GetDashboardSummary(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"summary":  store.Summary(),
			"lastSync": store.LastSync(),
		})
	}
}
