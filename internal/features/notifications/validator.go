package notifications

import (
	"fmt"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
)

func ValidateListQuery(query *ListQuery) error {
	query.Normalize()
	query.Email = validator.NormalizeEmail(query.Email)

	switch query.Type {
	case "", TypeAutoBlock, TypePostRejected:
		return nil
	default:
		return fmt.Errorf("unknown notification type %q: %w", query.Type, apperrors.ErrValidation)
	}
}
