package moderation

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
)

type StrikeQuery struct {
	Email string `form:"email" binding:"required,email"`
}

type StrikeResponse struct {
	Strike
	Threshold int `json:"threshold"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// @Summary Report strikes for an email
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param email query string true "Target user email"
// @Success 200 {object} response.APIResponse{data=StrikeResponse}
// @Router /moderation/strikes [get]
func (h *Handler) GetStrikes(c *gin.Context) {
	var query StrikeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}

	strike, err := h.service.GetStrike(c.Request.Context(), query.Email)
	if err != nil {
		response.FromError(c, err, "Failed to fetch strikes")
		return
	}
	response.Success(c, StrikeResponse{Strike: *strike, Threshold: h.service.Threshold()})
}

// @Summary Reset report strikes for an email
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param email query string true "Target user email"
// @Success 200 {object} response.APIResponse
// @Router /moderation/strikes [delete]
func (h *Handler) ResetStrikes(c *gin.Context) {
	var query StrikeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}

	if err := h.service.ResetStrikes(c.Request.Context(), query.Email); err != nil {
		response.FromError(c, err, "Failed to reset strikes")
		return
	}
	response.Success(c, nil, "Strikes reset")
}
