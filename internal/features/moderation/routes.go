package moderation

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	moderation := router.Group("/moderation")
	moderation.Use(authMiddleware)
	{
		moderation.GET("/strikes", handler.GetStrikes)
		moderation.DELETE("/strikes", handler.ResetStrikes)
	}
}
