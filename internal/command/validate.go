package command

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/apperrors"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report violations under the json field name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate runs struct validation on a command or query and returns every
// violation found, grouped by field. It never stops at the first violation.
// A nil return means the request is valid.
func Validate(req any) *apperrors.ValidationError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	violations := apperrors.NewValidationError()

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		violations.Add("request", "invalid request")
		return violations
	}

	for _, e := range validationErrors {
		violations.Add(e.Field(), violationMessage(e))
	}

	return violations
}

func violationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short, minimum is " + e.Param()
	case "max":
		return "Value is too long, maximum is " + e.Param()
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	case "lt":
		return "Value must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}
