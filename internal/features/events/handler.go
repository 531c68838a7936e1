package events

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cloudinary"
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

func postID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid event post ID", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ListPosts returns user-submitted event posts for moderation
// @Summary List event posts
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param postType query string false "incident, rescue or general_category"
// @Param status query string false "Pending, Approved or Rejected"
// @Param search query string false "Matches title or description"
// @Param includeDeleted query bool false "Include soft-deleted posts"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]EventPostResponse}}
// @Router /event-post/list [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}

	posts, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err, "Failed to fetch event posts")
		return
	}

	query.Normalize()
	response.Paginated(c, posts, total, query.Limit, query.Page)
}

// @Summary Get event post
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event post ID"
// @Success 200 {object} response.APIResponse{data=EventPostResponse}
// @Failure 404 {object} response.APIResponse
// @Router /event-post/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "Failed to fetch event post")
		return
	}
	response.Success(c, post)
}

// UpdateStatus approves or rejects a post
// @Summary Moderate event post
// @Description Rejecting notifies the poster with the given reason
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event post ID"
// @Param request body UpdateStatusRequest true "Decision"
// @Success 200 {object} response.APIResponse{data=EventPost}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /event-post/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_JSON")
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	post, err := h.service.UpdateStatus(c.Request.Context(), id, req, admin.Email)
	if err != nil {
		response.FromError(c, err, "Failed to update event post")
		return
	}
	response.Success(c, post, "Event post updated")
}

// @Summary Delete event post
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event post ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /event-post/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Failed to delete event post")
		return
	}
	response.Success(c, nil, "Event post deleted")
}

// CreateAdminPost publishes an announcement with an optional attachment
// @Summary Create admin event post
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param postType formData string true "incident, rescue or general_category"
// @Param eventType formData string false "Event type name"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param attachment formData file false "Image, video or document"
// @Success 201 {object} response.APIResponse{data=AdminEventPost}
// @Failure 400 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /event-post/create [post]
func (h *Handler) CreateAdminPost(c *gin.Context) {
	var req CreateAdminPostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_FORM")
		return
	}

	var att *Attachment
	file, header, err := c.Request.FormFile("attachment")
	switch {
	case err == nil:
		defer file.Close()
		if _, err := cloudinary.ValidateAttachment(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}
		att = &Attachment{File: file, Header: header}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.BadRequest(c, "Failed to read attachment", "INVALID_FILE")
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	post, err := h.service.CreateAdminPost(c.Request.Context(), req, att, admin.Email)
	if err != nil {
		if errors.Is(err, cloudinary.ErrNotConfigured) {
			response.ServiceUnavailable(c, "Media uploads are not configured", "UPLOAD_UNAVAILABLE")
			return
		}
		response.FromError(c, err, "Failed to create event post")
		return
	}
	response.Created(c, post, "Event post created")
}

// @Summary List admin event posts
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param postType query string false "incident, rescue or general_category"
// @Param search query string false "Matches title"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]AdminEventPost}}
// @Router /event-post/admin-list [get]
func (h *Handler) ListAdminPosts(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}

	posts, total, err := h.service.ListAdminPosts(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err, "Failed to fetch admin posts")
		return
	}

	query.Normalize()
	response.Paginated(c, posts, total, query.Limit, query.Page)
}

// @Summary Update admin event post
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin post ID"
// @Param request body UpdateAdminPostRequest true "Fields to change"
// @Success 200 {object} response.APIResponse{data=AdminEventPost}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /event-post/admin/{id} [put]
func (h *Handler) UpdateAdminPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req UpdateAdminPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_JSON")
		return
	}

	post, err := h.service.UpdateAdminPost(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err, "Failed to update admin post")
		return
	}
	response.Success(c, post, "Admin post updated")
}

// @Summary Delete admin event post
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin post ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /event-post/admin/{id} [delete]
func (h *Handler) DeleteAdminPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAdminPost(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Failed to delete admin post")
		return
	}
	response.Success(c, nil, "Admin post deleted")
}

// @Summary Reaction summary for an admin post
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin post ID"
// @Success 200 {object} response.APIResponse{data=ReactionSummary}
// @Failure 404 {object} response.APIResponse
// @Router /event-post/admin/{id}/reactions [get]
func (h *Handler) Reactions(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	summary, err := h.service.Reactions(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "Failed to fetch reactions")
		return
	}
	response.Success(c, summary)
}

// @Summary List event types
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]EventType}
// @Router /event-post/types [get]
func (h *Handler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to fetch event types")
		return
	}
	response.Success(c, types)
}

// @Summary Create event type
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventTypeRequest true "Event type"
// @Success 201 {object} response.APIResponse{data=EventType}
// @Failure 409 {object} response.APIResponse
// @Router /event-post/types [post]
func (h *Handler) CreateType(c *gin.Context) {
	var req CreateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_JSON")
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	t, err := h.service.CreateType(c.Request.Context(), req, admin.Email)
	if err != nil {
		response.FromError(c, err, "Failed to create event type")
		return
	}
	response.Created(c, t, "Event type created")
}
