package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lostfound-hub/api-go/controllers"
)

func SetupNotificationRoutes(rg *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.GET("/unread-count", notificationController.UnreadCount)
		notifications.PUT("/:id/read", notificationController.MarkRead)
		notifications.PUT("/read-all", notificationController.MarkAllRead)
	}
}
