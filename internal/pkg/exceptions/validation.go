package exceptions

import (
	"strings"

	"teleclinic-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validationMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"min":      "is too short",
	"max":      "is too long",
	"alphanum": "must contain only letters and digits",
	"gt":       "must be greater than zero",
	"password": "must be at least 8 characters with an uppercase letter and a special character",
	"oneof":    "has an unsupported value",
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		message, known := validationMessages[firstErr.Tag()]
		if !known {
			message = "is invalid"
		}
		return fieldName + " " + message
	}
	return constvars.ErrClientCannotProcessRequest
}
