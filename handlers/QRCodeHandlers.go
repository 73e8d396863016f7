package handlers

import (
	"encoding/json"
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

// taskQRData is the payload embedded in a task QR code: enough to identify
// the task on site without exposing internal lookup ids.
type taskQRData struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Tower       string `json:"tower"`
	Location    string `json:"location"`
	Situation   string `json:"situation"`
	Criticality string `json:"criticality"`
	CallDate    string `json:"callDate"`
}

// GetTaskQRCode godoc
// @Summary      Render a task as a QR code PNG
// @Tags         tasks
// @Param        id  path  string  true  "Task ID"
// @Success      200  "PNG image"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/tasks/{id}/qrcode [get]
func GetTaskQRCode(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, ok := store.TaskByID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}

		data := taskQRData{
			ID:          task.ID,
			Title:       task.Title,
			Tower:       store.ResolveName(models.CategoryTowers, task.TowerID),
			Location:    task.Location,
			Situation:   task.Situation,
			Criticality: task.Criticality,
			CallDate:    task.CallDate,
		}
		jsonData, err := json.Marshal(data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal task data"})
			return
		}

		qr, err := qrcode.New(string(jsonData), qrcode.Medium)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}
		png, err := qr.PNG(512)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code rendering failed")
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
