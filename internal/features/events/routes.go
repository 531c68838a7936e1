package events

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	posts := router.Group("/event-post")
	posts.Use(authMiddleware)
	{
		posts.GET("/list", handler.ListPosts)
		posts.GET("/types", handler.ListTypes)
		posts.POST("/types", handler.CreateType)

		posts.POST("/create", handler.CreateAdminPost)
		posts.GET("/admin-list", handler.ListAdminPosts)
		posts.PUT("/admin/:id", handler.UpdateAdminPost)
		posts.DELETE("/admin/:id", handler.DeleteAdminPost)
		posts.GET("/admin/:id/reactions", handler.Reactions)

		posts.GET("/:id", handler.GetPost)
		posts.PUT("/:id/status", handler.UpdateStatus)
		posts.DELETE("/:id", handler.DeletePost)
	}
}
