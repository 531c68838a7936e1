package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login godoc
// @Summary Admin login
// @Description Authenticates an admin with email and password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.APIResponse{data=LoginResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /auth/login/email [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.Describe(err), "INVALID_JSON")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, "Failed to sign in")
		return
	}
	response.Success(c, resp, "Signed in")
}

// Me godoc
// @Summary Current admin
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Admin}
// @Failure 401 {object} response.APIResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	principal, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Unauthorized(c, "Not signed in", "AUTH_REQUIRED")
		return
	}

	admin, err := h.service.Me(c.Request.Context(), principal.AdminID)
	if err != nil {
		response.FromError(c, err, "Failed to load admin")
		return
	}
	response.Success(c, admin)
}
