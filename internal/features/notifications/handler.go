package notifications

import (
	"github.com/gin-gonic/gin"
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

// ListNotifications godoc
// @Summary List notifications
// @Description Notifications sent to app users, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param email query string false "Recipient email"
// @Param type query string false "auto_block or post_rejected"
// @Param unreadOnly query bool false "Only show unread"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]Notification}}
// @Failure 400 {object} response.APIResponse
// @Router /notification/list [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}
	if err := ValidateListQuery(&query); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_QUERY")
		return
	}

	notifications, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err, "Failed to fetch notifications")
		return
	}

	response.Paginated(c, notifications, total, query.Limit, query.Page)
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.APIResponse{data=MarkReadResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /notification/{id}/read [patch]
func (h *Handler) MarkAsRead(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification ID", "INVALID_ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), notificationID); err != nil {
		response.FromError(c, err, "Failed to mark as read")
		return
	}

	response.Success(c, MarkReadResponse{
		ID:     notificationID,
		IsRead: true,
	})
}
