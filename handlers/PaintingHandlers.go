package handlers

import (
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
)

func GetPaintingProjects(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.PaintingProjects())
	}
}

func CreatePaintingProject(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.PaintingProject
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project payload", "details": err.Error()})
			return
		}
		if p.Local == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Local is required"})
			return
		}
		added, err := store.AddPaintingProject(c.Request.Context(), p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, added)
	}
}

func UpdatePaintingProject(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch payload", "details": err.Error()})
			return
		}
		if err := store.UpdatePaintingProject(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Project updated"})
	}
}

func DeletePaintingProject(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeletePaintingProject(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
	}
}
