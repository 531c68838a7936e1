// ================== internal/middleware/auth.go ==================
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/jwt"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
)

// Context keys set by Auth
const (
	ContextAdminID = "adminID"
	ContextEmail   = "email"
	ContextRole    = "role"
)

// Admin roles allowed into the back office
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
)

// Principal is the authenticated admin behind a request
type Principal struct {
	AdminID string
	Email   string
	Role    string
}

// BearerToken extracts the token from "Bearer <token>" (case-insensitive) or a raw header value
func BearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1]
	}
	if len(fields) == 1 {
		return fields[0]
	}
	return ""
}

// Auth validates the bearer token and requires one of roles (any role when empty)
func Auth(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		tokenString := BearerToken(authHeader)
		if tokenString == "" {
			response.Unauthorized(c, "Invalid authorization format", "INVALID_AUTH_FORMAT")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateTokenWithRole(tokenString, secret, roles...)
		if err != nil {
			if errors.Is(err, jwt.ErrInsufficientRole) {
				response.Forbidden(c, "Insufficient permissions", "FORBIDDEN")
			} else {
				response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			}
			c.Abort()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AdminOnly is Auth restricted to back-office roles
func AdminOnly(secret string) gin.HandlerFunc {
	return Auth(secret, RoleSuperAdmin, RoleAdmin, RoleModerator)
}

// CurrentAdmin reads the principal set by Auth
func CurrentAdmin(c *gin.Context) (Principal, bool) {
	id := c.GetString(ContextAdminID)
	if id == "" {
		return Principal{}, false
	}
	return Principal{
		AdminID: id,
		Email:   c.GetString(ContextEmail),
		Role:    c.GetString(ContextRole),
	}, true
}
