package service

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced entity is not in the store.
var ErrNotFound = errors.New("entity not found")

// ValidationError is a client-side precondition failure detected
// before any network call. Surfaced as an inline form error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
