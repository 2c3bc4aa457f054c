// Package apperrors defines the error taxonomy shared by handlers and the
// transport layer: validation failures, missing entities and storage
// conflicts. Anything else is treated as unexpected and reported generically.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NotFoundError indicates a referenced entity id does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NotFound creates a NotFoundError for the given entity type and id.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError indicates a storage-level uniqueness violation, such as a
// duplicate category name.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Conflict creates a ConflictError for the given entity type.
func Conflict(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// ValidationError carries every field violation found for a request, grouped
// by field. A request is never rejected on the first violation alone.
type ValidationError struct {
	Violations map[string][]string
}

// NewValidationError creates an empty ValidationError ready to collect
// violations.
func NewValidationError() *ValidationError {
	return &ValidationError{Violations: make(map[string][]string)}
}

// Add appends a violation message for the given field.
func (e *ValidationError) Add(field, message string) {
	e.Violations[field] = append(e.Violations[field], message)
}

// Merge folds all violations from other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, messages := range other.Violations {
		e.Violations[field] = append(e.Violations[field], messages...)
	}
}

// Empty reports whether no violations were collected.
func (e *ValidationError) Empty() bool {
	return len(e.Violations) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// AsValidation extracts a ValidationError from err if present.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
