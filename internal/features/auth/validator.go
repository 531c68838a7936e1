package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
)

const minPasswordLength = 8

var roles = []string{middleware.RoleSuperAdmin, middleware.RoleAdmin, middleware.RoleModerator}

// ValidateCreateAdmin normalizes req in place and checks its fields
func ValidateCreateAdmin(req *CreateAdminRequest) error {
	req.Email = validator.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = middleware.RoleAdmin
	}

	var errs []error
	if !validator.IsValidEmail(req.Email) {
		errs = append(errs, errors.New("email must be a valid email"))
	}
	if req.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if len(req.Password) < minPasswordLength {
		errs = append(errs, fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}
	if !isValidRole(req.Role) {
		errs = append(errs, fmt.Errorf("role must be one of %s", strings.Join(roles, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, errors.Join(errs...))
	}
	return nil
}

func isValidRole(role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
