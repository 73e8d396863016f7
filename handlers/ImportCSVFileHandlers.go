package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"backend/cache"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxImportSize = 10 << 20 // 10 MB

func recordImportJob(gormDB *gorm.DB, job *models.ImportJob) {
	if gormDB == nil {
		return
	}
	if err := gormDB.Create(job).Error; err != nil {
		log.Printf("[import] failed to record job for %s: %v", job.FileName, err)
	}
}

// ImportCSV godoc
// @Summary      Import visits or tasks from a CSV file
// @Tags         import
// @Accept       multipart/form-data
// @Param        file    formData  file    true   "CSV file"
// @Param        target  formData  string  false  "Force target type (task or visit)"
// @Success      200  {object}  models.ImportResult
// @Failure      400  {object}  models.ImportResult
// @Router       /api/import_csv [post]
func ImportCSV(store *cache.Store, gormDB *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ImportResult{
				Success: false,
				Message: "No file uploaded",
			})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ImportResult{
				Success: false,
				Message: fmt.Sprintf("Failed to read file: %v", err),
			})
			return
		}

		target := c.PostForm("target")
		payload, err := services.ParseImport(string(data), target)
		if err != nil {
			recordImportJob(gormDB, &models.ImportJob{
				FileName: header.Filename,
				Type:     target,
				Status:   "failed",
				Error:    err.Error(),
			})
			c.JSON(http.StatusBadRequest, models.ImportResult{
				Success: false,
				Message: err.Error(),
			})
			return
		}

		ctx := c.Request.Context()
		if payload.Type == services.ImportTypeVisit {
			err = store.BulkAddVisits(ctx, payload.Visits)
		} else {
			err = store.BulkAddTasks(ctx, payload.Tasks)
		}
		if err != nil {
			recordImportJob(gormDB, &models.ImportJob{
				FileName: header.Filename,
				Type:     payload.Type,
				Status:   "failed",
				Count:    payload.Count(),
				Error:    err.Error(),
			})
			c.JSON(http.StatusInternalServerError, models.ImportResult{
				Success: false,
				Message: err.Error(),
				Type:    payload.Type,
			})
			return
		}

		store.RefreshAll(ctx)
		recordImportJob(gormDB, &models.ImportJob{
			FileName: header.Filename,
			Type:     payload.Type,
			Status:   "completed",
			Count:    payload.Count(),
		})
		c.JSON(http.StatusOK, models.ImportResult{
			Success: true,
			Message: fmt.Sprintf("Imported %d %s rows", payload.Count(), payload.Type),
			Type:    payload.Type,
			Count:   payload.Count(),
		})
	}
}

// DownloadTaskTemplate serves the CSV template for task imports.
func DownloadTaskTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment;filename=task_template.csv")
		c.String(http.StatusOK, services.TaskTemplateCSV)
	}
}

// DownloadVisitTemplate serves the CSV template for visit imports.
func DownloadVisitTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment;filename=visit_template.csv")
		c.String(http.StatusOK, services.VisitTemplateCSV)
	}
}
