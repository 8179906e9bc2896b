package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/soundreach/backoffice/pkg/sanitize"
)

// Shared validator instance, reused across all handlers.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// noxss rejects values carrying script-injection indicators.
	_ = v.RegisterValidation("noxss", func(fl validator.FieldLevel) bool {
		return !sanitize.ContainsXSS(fl.Field().String())
	})

	return v
}

// ValidateRequest validates a request DTO and reports the first violated
// constraint as "field: message", matching fail-fast expectations.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		first := ve[0]
		return fmt.Errorf("%s: %s", first.Field(), formatValidationError(first))
	}

	return fmt.Errorf("invalid request")
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must have a minimum of %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have a maximum of %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "uuid":
		return "must be a valid identifier"
	case "noxss":
		return "contains potentially malicious content"
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
