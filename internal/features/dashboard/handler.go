package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// @Summary Dashboard stats
// @Description Users by status, event posts by status and type, open reports by type
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Stats}
// @Router /dashboard/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to load dashboard stats")
		return
	}
	response.Success(c, stats)
}

// @Summary Event posts per day
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (default 30, max 365)"
// @Success 200 {object} response.APIResponse{data=Timeline}
// @Failure 400 {object} response.APIResponse
// @Router /dashboard/events-timeline [get]
func (h *Handler) GetEventsTimeline(c *gin.Context) {
	var query TimelineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}

	timeline, err := h.service.Timeline(c.Request.Context(), query.Days)
	if err != nil {
		response.FromError(c, err, "Failed to load events timeline")
		return
	}
	response.Success(c, timeline)
}
