package media

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	media := router.Group("/media")
	media.Use(authMiddleware)
	{
		media.POST("/upload", handler.UploadMedia)
	}
}
