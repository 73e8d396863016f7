package handlers

import (
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
)

// GetTasks godoc
// @Summary      List maintenance tasks
// @Tags         tasks
// @Success      200  {array}  models.Task
// @Router       /api/tasks [get]
func GetTasks(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Tasks())
	}
}

// CreateTask godoc
// @Summary      Create a maintenance task
// @Tags         tasks
// @Param        task  body  models.Task  true  "Task"
// @Success      201  {object}  models.Task
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/tasks [post]
func CreateTask(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var task models.Task
		if err := c.ShouldBindJSON(&task); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task payload", "details": err.Error()})
			return
		}
		if task.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		added, err := store.AddTask(c.Request.Context(), task)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, added)
	}
}

// UpdateTask godoc
// @Summary      Partially update a task
// @Tags         tasks
// @Param        id     path  string          true  "Task ID"
// @Param        patch  body  map[string]any  true  "Changed fields"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/tasks/{id} [put]
func UpdateTask(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch payload", "details": err.Error()})
			return
		}
		if err := store.UpdateTask(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
	}
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/tasks/{id} [delete]
func DeleteTask(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
	}
}

// ToggleTaskMaterial godoc
// @Summary      Toggle a material on a task
// @Tags         tasks
// @Param        id           path  string  true  "Task ID"
// @Param        material_id  path  string  true  "Material ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/tasks/{id}/materials/{material_id} [post]
func ToggleTaskMaterial(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.ToggleTaskMaterial(c.Request.Context(), c.Param("id"), c.Param("material_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle material", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Material toggled"})
	}
}
