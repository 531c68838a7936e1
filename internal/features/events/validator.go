package events

import (
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
)

func IsValidPostType(t string) bool {
	for _, v := range PostTypes {
		if v == t {
			return true
		}
	}
	return false
}

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// RegisterValidators installs the posttype and eventstatus binding tags
func RegisterValidators() error {
	if err := validator.RegisterEnum("posttype", PostTypes...); err != nil {
		return err
	}
	return validator.RegisterEnum("eventstatus", Statuses...)
}
