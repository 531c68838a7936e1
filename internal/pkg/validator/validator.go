package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	registerMu sync.Mutex
)

// IsValidEmail checks if the email format is valid
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// NormalizeEmail trims and lower-cases an address so it can be used as a key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnumFunc builds a validator that accepts only the given values (empty passes,
// pair it with required when the field is mandatory)
func EnumFunc(values ...string) validator.Func {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, ok := allowed[s]
		return ok
	}
}

// RegisterEnum installs an enum tag on gin's binding validator
func RegisterEnum(tag string, values ...string) error {
	registerMu.Lock()
	defer registerMu.Unlock()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation(tag, EnumFunc(values...))
}

// MustRegisterEnums registers every tag in enums and panics on failure
func MustRegisterEnums(enums map[string][]string) {
	for tag, values := range enums {
		if err := RegisterEnum(tag, values...); err != nil {
			panic(fmt.Sprintf("register validator %q: %v", tag, err))
		}
	}
}

// Describe turns validator errors into a single readable message
func Describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s has an invalid value", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
