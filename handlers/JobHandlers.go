package handlers

import (
	"errors"
	"net/http"

	"backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetImportJobs godoc
// @Summary      List CSV import jobs, newest first
// @Tags         import
// @Success      200  {array}  models.ImportJob
// @Router       /api/import_jobs [get]
func GetImportJobs(gormDB *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var jobs []models.ImportJob
		if err := gormDB.Order("created_at DESC").Limit(100).Find(&jobs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list import jobs", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

// GetImportJob godoc
// @Summary      Fetch one CSV import job
// @Tags         import
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  models.ImportJob
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/import_jobs/{id} [get]
func GetImportJob(gormDB *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var job models.ImportJob
		err := gormDB.First(&job, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Import job not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch import job", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, job)
	}
}
