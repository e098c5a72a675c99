package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/models"
	"github.com/lostfound-hub/api-go/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func (nc *NotificationController) ListNotifications(c *gin.Context) {
	claims := utils.GetUser(c)

	db := nc.DB.Where("user_id = ?", claims.UserID)
	if c.Query("unread") == "true" {
		db = db.Where("is_read = false")
	}

	var notifications []models.Notification
	result := db.
		Order("created_at DESC").
		Limit(100).
		Find(&notifications)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching notifications"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: notifications})
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	claims := utils.GetUser(c)

	var count int64
	result := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", claims.UserID).
		Count(&count)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting notifications"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: gin.H{"unread": count}})
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	claims := utils.GetUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	result := nc.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, claims.UserID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Notification marked as read"})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	claims := utils.GetUser(c)

	result := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", claims.UserID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating notifications"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"updated": result.RowsAffected},
		Message: "All notifications marked as read",
	})
}
