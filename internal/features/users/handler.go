package users

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListUsers returns app users
// @Summary List users
// @Description Paginated app users, newest first. search matches name or email.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, inactive or pending"
// @Param search query string false "Name or email fragment"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]User}}
// @Failure 400 {object} response.APIResponse
// @Router /user/list [get]
func (h *Handler) ListUsers(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}

	users, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err, "Failed to fetch users")
		return
	}

	query.Normalize()
	response.Paginated(c, users, total, query.Limit, query.Page)
}

// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse{data=UserDetail}
// @Failure 404 {object} response.APIResponse
// @Router /user/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", "INVALID_ID")
		return
	}

	user, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "Failed to fetch user")
		return
	}

	response.Success(c, user)
}

// BlockUser deactivates a user on behalf of the calling admin
// @Summary Block user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse{data=User}
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /user/{id}/block [put]
func (h *Handler) BlockUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", "INVALID_ID")
		return
	}

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_FAILED")
		return
	}

	user, err := h.service.Block(c.Request.Context(), userID, admin.Email)
	if err != nil {
		response.FromError(c, err, "Failed to block user")
		return
	}

	response.Success(c, user, "User blocked")
}

// @Summary Unblock user
// @Description Reactivates an inactive user and resets their report strikes
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse{data=User}
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /user/{id}/unblock [put]
func (h *Handler) UnblockUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", "INVALID_ID")
		return
	}

	user, err := h.service.Unblock(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "Failed to unblock user")
		return
	}

	response.Success(c, user, "User unblocked")
}

// @Summary Update user status
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.APIResponse{data=User}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /user/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", "INVALID_ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_JSON")
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	user, err := h.service.UpdateStatus(c.Request.Context(), userID, req.Status, admin.Email)
	if err != nil {
		response.FromError(c, err, "Failed to update user status")
		return
	}

	response.Success(c, user, "User status updated")
}
