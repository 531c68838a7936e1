package users

import (
	"fmt"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
)

// IsValidStatus reports whether s is a known user status
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidateListQuery(q *ListQuery) error {
	q.Normalize()
	if q.Status != "" && !IsValidStatus(q.Status) {
		return fmt.Errorf("unknown status %q: %w", q.Status, apperrors.ErrValidation)
	}
	return nil
}

// RegisterValidators installs the userstatus binding tag
func RegisterValidators() error {
	return validator.RegisterEnum("userstatus", Statuses...)
}
