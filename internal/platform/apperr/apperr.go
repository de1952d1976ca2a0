// Package apperr defines the error taxonomy shared by the validation layer,
// the repositories and the HTTP error handler.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors is the key used for record-level validation messages.
const NonFieldErrors = "non_field_errors"

// ValidationError carries per-field rule violations. It is always
// recoverable by the caller resubmitting corrected input.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no violation has been recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError reports that a record addressed by id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError for resource/id.
func NotFound(resource string, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id.String()}
}

// ConstraintError is a store-level unique, foreign-key or check violation
// that slipped past application validation.
type ConstraintError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return "constraint violation: " + e.Message
	}
	return fmt.Sprintf("constraint violation on %s: %s", e.Field, e.Message)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConstraint reports whether err is (or wraps) a ConstraintError.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
