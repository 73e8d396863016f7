package handlers

import (
	"net/http"

	"backend/cache"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// ExportTasksCSV godoc
// @Summary      Download the task collection as CSV
// @Tags         export
// @Success      200  "CSV file"
// @Router       /api/export_csv_tasks [get]
func ExportTasksCSV(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment;filename=tasks_export.csv")
		c.String(http.StatusOK, services.ExportTasksCSV(store))
	}
}
