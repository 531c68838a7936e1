package reports

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	reports := router.Group("/report")
	reports.Use(authMiddleware)
	{
		reports.POST("", handler.CreateReport)
		reports.GET("/post-list", handler.ListPostReports)
		reports.GET("/comment-list", handler.ListCommentReports)
		reports.GET("/user-list", handler.ListUserReports)
		reports.GET("/:id", handler.GetReport)
		reports.PUT("/:id/status", handler.UpdateStatus)
	}
}
