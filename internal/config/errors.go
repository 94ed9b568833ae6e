package config

import "fmt"

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s' (value: %v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) error {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// WrapError adds context to err.
func WrapError(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}
