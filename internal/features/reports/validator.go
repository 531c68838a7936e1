package reports

import (
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
)

func IsValidType(t string) bool {
	for _, v := range Types {
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

// RegisterValidators installs the reporttype and reportstatus binding tags
func RegisterValidators() error {
	if err := validator.RegisterEnum("reporttype", Types...); err != nil {
		return err
	}
	return validator.RegisterEnum("reportstatus", Statuses...)
}
