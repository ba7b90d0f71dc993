package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound indicates that no task exists for the requested key, either
	// on a point lookup or because a conditional operation's existence
	// precondition failed.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrInvalidEntity is returned when an entity is rejected by the backend,
	// for example by a constraint violation.
	ErrInvalidEntity = errors.New("invalid entity")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError carries the operation context of a backend failure that is not
// otherwise classified (transport failure, provider fault, timeout).
type StoreError struct {
	Operation string // The operation that failed (e.g., "put", "conditional_update")
	Message   string // Provider-reported message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on task failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on task failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError for the given operation.
func NewStoreError(operation, message string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
