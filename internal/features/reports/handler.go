package reports

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

// CreateReport files a report
// @Summary Create report
// @Description Files an OPEN report. A targetUserEmail counts toward that user's auto-block threshold.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReportRequest true "Report"
// @Success 201 {object} response.APIResponse{data=CreateReportResponse}
// @Failure 400 {object} response.APIResponse
// @Router /report [post]
func (h *Handler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_JSON")
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	resp, err := h.service.Create(c.Request.Context(), req, admin.Email)
	if err != nil {
		response.FromError(c, err, "Failed to create report")
		return
	}

	response.Created(c, resp, "Report created")
}

func (h *Handler) list(c *gin.Context, reportType string) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_QUERY")
		return
	}

	reports, total, err := h.service.List(c.Request.Context(), reportType, query)
	if err != nil {
		response.FromError(c, err, "Failed to fetch reports")
		return
	}

	query.Normalize()
	response.Paginated(c, reports, total, query.Limit, query.Page)
}

// @Summary List post reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "OPEN, IN_REVIEW, RESOLVED or DISMISSED"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]Report}}
// @Router /report/post-list [get]
func (h *Handler) ListPostReports(c *gin.Context) { h.list(c, TypePost) }

// @Summary List comment reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "OPEN, IN_REVIEW, RESOLVED or DISMISSED"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]Report}}
// @Router /report/comment-list [get]
func (h *Handler) ListCommentReports(c *gin.Context) { h.list(c, TypeComment) }

// @Summary List user reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "OPEN, IN_REVIEW, RESOLVED or DISMISSED"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]Report}}
// @Router /report/user-list [get]
func (h *Handler) ListUserReports(c *gin.Context) { h.list(c, TypeUser) }

// @Summary Get report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.APIResponse{data=Report}
// @Failure 404 {object} response.APIResponse
// @Router /report/{id} [get]
func (h *Handler) GetReport(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return
	}

	report, err := h.service.Get(c.Request.Context(), reportID)
	if err != nil {
		response.FromError(c, err, "Failed to fetch report")
		return
	}
	response.Success(c, report)
}

// @Summary Update report status
// @Description Closing a report (RESOLVED or DISMISSED) records the acting admin
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.APIResponse{data=Report}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /report/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_JSON")
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	report, err := h.service.UpdateStatus(c.Request.Context(), reportID, req, admin.Email)
	if err != nil {
		response.FromError(c, err, "Failed to update report")
		return
	}
	response.Success(c, report, "Report updated")
}
