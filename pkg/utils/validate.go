package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "dukkan/pkg/errors"
)

var validate = validator.New()

// CheckDraft runs struct validation on a draft before any network call is
// issued, translating the first failing field into a field-specific message.
func CheckDraft(draft interface{}) error {
	if err := validate.Struct(draft); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			return translateValidationError(validationErr)
		}
		return apperrors.Validation("Invalid input data")
	}
	return nil
}

func translateValidationError(validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = field + " is required"
		case "min":
			message = field + " must be at least " + param
		case "max":
			message = field + " must be at most " + param
		case "oneof":
			message = field + " must be one of: " + param
		case "email":
			message = field + " must be a valid email address"
		case "numeric":
			message = field + " must be a number"
		default:
			message = field + " is invalid"
		}

		return apperrors.Validation(message)
	}

	return apperrors.Validation("Invalid input data")
}
