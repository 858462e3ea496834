package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrValidation      = errors.New("validation failed")
	ErrFiltersRequired = errors.New("filters not found")
	ErrStoreFailure    = errors.New("store failure")

	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrInvalidGroupBy      = fmt.Errorf("%w: unsupported group by field", ErrInvalidInput)
	ErrInvalidReference    = fmt.Errorf("%w: malformed reference id", ErrInvalidInput)
)

// Validation constants
const (
	MaxCategoryNameLength           = 15
	MaxCategoryDescriptionLength    = 100
	MaxTransactionDescriptionLength = 100
)

// ValidationError reports a single field that violates an entity constraint.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s: %s", e.Entity, e.Field, e.Message)
}

// Is lets callers match any validation failure with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for one entity field
func NewValidationError(entity, field, message string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Message: message}
}

// OperationError wraps a record store failure with the operation that was attempted.
// Error() names only the operation so storage internals never reach API clients;
// the cause stays reachable through Unwrap for logging.
type OperationError struct {
	Op     string
	Entity string
	Err    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s failed", e.Op, e.Entity)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is reports every OperationError as a store failure.
func (e *OperationError) Is(target error) bool {
	return target == ErrStoreFailure
}

// WrapStoreError turns an adapter error into an OperationError unless it already
// carries a domain meaning (not found, validation, caller error).
func WrapStoreError(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrFiltersRequired) {
		return err
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &OperationError{Op: op, Entity: entity, Err: err}
}
