package handlers

import (
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
)

// Weekly schedule.

func GetSchedule(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Schedule())
	}
}

func CreateScheduleItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.ScheduleItem
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule payload", "details": err.Error()})
			return
		}
		added, err := store.AddScheduleItem(c.Request.Context(), item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule item", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, added)
	}
}

func UpdateScheduleItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch payload", "details": err.Error()})
			return
		}
		if err := store.UpdateScheduleItem(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule item", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Schedule item updated"})
	}
}

func DeleteScheduleItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeleteScheduleItem(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule item", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Schedule item deleted"})
	}
}

// Monthly schedule, same shape at month granularity.

func GetMonthlySchedule(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.MonthlySchedule())
	}
}

func CreateMonthlyScheduleItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MonthlyScheduleItem
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule payload", "details": err.Error()})
			return
		}
		added, err := store.AddMonthlyScheduleItem(c.Request.Context(), item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule item", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, added)
	}
}

func UpdateMonthlyScheduleItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch payload", "details": err.Error()})
			return
		}
		if err := store.UpdateMonthlyScheduleItem(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule item", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Schedule item updated"})
	}
}

func DeleteMonthlyScheduleItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeleteMonthlyScheduleItem(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule item", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Schedule item deleted"})
	}
}

// Third-party contracts.

func GetThirdPartySchedule(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.ThirdPartySchedule())
	}
}

func CreateThirdPartyItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.ThirdPartyScheduleItem
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract payload", "details": err.Error()})
			return
		}
		if item.Company == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Company is required"})
			return
		}
		added, err := store.AddThirdPartyItem(c.Request.Context(), item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, added)
	}
}

func UpdateThirdPartyItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch payload", "details": err.Error()})
			return
		}
		if err := store.UpdateThirdPartyItem(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contract", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Contract updated"})
	}
}

func DeleteThirdPartyItem(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeleteThirdPartyItem(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
	}
}
