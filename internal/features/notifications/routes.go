package notifications

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	notifications := router.Group("/notification")
	notifications.Use(authMiddleware)
	{
		notifications.GET("/list", handler.ListNotifications)
		notifications.PATCH("/:id/read", handler.MarkAsRead)
	}
}
