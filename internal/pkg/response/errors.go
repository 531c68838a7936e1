package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
)

// FromError maps sentinel errors from pkg/errors onto HTTP responses.
// Unknown errors become a 500 carrying fallback as the message.
func FromError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		NotFound(c, err.Error(), "NOT_FOUND")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		Conflict(c, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		Conflict(c, err.Error(), "CONFLICT")
	case errors.Is(err, apperrors.ErrInvalidID):
		BadRequest(c, err.Error(), "INVALID_ID")
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		BadRequest(c, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, apperrors.ErrUnauthorized):
		Unauthorized(c, err.Error(), "AUTH_FAILED")
	case errors.Is(err, apperrors.ErrForbidden):
		Forbidden(c, err.Error(), "FORBIDDEN")
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, fallback, "INTERNAL_ERROR")
	}
}
