package services

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable is returned when the post store cannot serve a request
var ErrServiceUnavailable = errors.New("post store unavailable")

// ValidationError represents a missing or malformed input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if err is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// ConflictError is returned when a post with the same title already exists
type ConflictError struct {
	Title string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("post with title %q already exists", e.Title)
}

// IsConflict checks if err is a conflict error
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// NotFoundError is returned when the target post does not exist
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post not found: %d", e.ID)
}

// IsNotFound checks if err is a not found error
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrServiceUnavailable, err)
}
