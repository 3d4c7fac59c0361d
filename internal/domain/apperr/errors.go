// Package apperr defines the error taxonomy shared by services and
// handlers: not-found, validation, conflict, authentication and
// authorization failures. Handlers branch on these with errors.Is/As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an entity lookup miss by id or username.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials signals a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden signals a role mismatch on a protected path.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a single field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError reports a state-dependent operation refusal, such as
// deleting a project that still owns tasks.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Reason }

// Conflict builds a ConflictError with the given reason.
func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
