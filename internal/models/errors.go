package models

import "fmt"

// Error kinds for the kitchen core. Validation failures surface straight to
// the caller; upstream failures are absorbed by the fallback recipe path;
// persistence failures recover to defaults. None of them is fatal.

// ValidationError reports caller input that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an operation against an unknown item id
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ID)
}

// UpstreamError reports a failed exchange with the recipe-generation service
type UpstreamError struct {
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("upstream: %s", e.Reason)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PersistenceError reports malformed or unreadable persisted state
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
