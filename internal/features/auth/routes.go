package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth; loginLimiter guards the password endpoint
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware, loginLimiter gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/login/email", loginLimiter, handler.Login)
		auth.GET("/me", authMiddleware, handler.Me)
	}
}
