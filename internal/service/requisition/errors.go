package requisition

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requisition id does not exist.
var ErrNotFound = errors.New("requisition not found")

// AuthorizationError: the caller's role or identity is not permitted at
// the requisition's current approval gate. State is never mutated.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

// StateError: the operation is invalid in the requisition's current
// lifecycle state (terminal, level mismatch, concurrent advance).
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return "invalid state: " + e.Reason
}

// ValidationError: required input is missing or malformed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func authorizationErrorf(format string, args ...interface{}) error {
	return &AuthorizationError{Reason: fmt.Sprintf(format, args...)}
}

func stateErrorf(format string, args ...interface{}) error {
	return &StateError{Reason: fmt.Sprintf(format, args...)}
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
