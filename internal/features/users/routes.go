package users

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	users := router.Group("/user")
	users.Use(authMiddleware)
	{
		users.GET("/list", handler.ListUsers)
		users.GET("/:id", handler.GetUser)
		users.PUT("/:id/block", handler.BlockUser)
		users.PUT("/:id/unblock", handler.UnblockUser)
		users.PUT("/:id/status", handler.UpdateStatus)
	}
}
