// Package apperror holds the error types shared by the gallery stores.
package apperror

import (
	"errors"
	"strings"
)

// ValidationError reports user input that was rejected before reaching a store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// Required returns a ValidationError when value is blank.
func Required(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, message)
	}
	return nil
}
