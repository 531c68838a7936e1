package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/jwt"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origin is enforced by the token, browsers cannot set headers on upgrade
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS authenticates the ?token= query (or Authorization header) and
// attaches the connection to the hub
// @Summary Realtime dashboard feed
// @Description Websocket stream of report.created, user.auto_blocked and event.status_changed events
// @Tags realtime
// @Param token query string true "Admin access token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.APIResponse
// @Router /ws [get]
func (h *Hub) ServeWS(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = middleware.BearerToken(c.GetHeader("Authorization"))
		}
		if token == "" {
			response.Unauthorized(c, "Token required", "AUTH_REQUIRED")
			return
		}

		claims, err := jwt.ValidateTokenWithRole(token, secret,
			middleware.RoleSuperAdmin, middleware.RoleAdmin, middleware.RoleModerator)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			hub:     h,
			conn:    conn,
			adminID: claims.AdminID,
			send:    make(chan []byte, sendBuffer),
		}

		select {
		case h.register <- client:
		case <-h.done:
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()

		h.Publish(EventConnected, gin.H{"adminId": claims.AdminID})
	}
}
