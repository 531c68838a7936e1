package dashboard

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(authMiddleware)
	{
		dashboard.GET("/stats", handler.GetStats)
		dashboard.GET("/events-timeline", handler.GetEventsTimeline)
	}
}
