package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a project or sub-resource does not exist
	// or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness rule would be violated,
	// e.g. copying a category into a type the room already has.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries a field-level message back to the entry form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for a field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a field validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
