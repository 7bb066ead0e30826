package engine

import (
	"errors"
	"fmt"

	"github.com/nickgartmann/todo-trek/internal/validate"
)

// Error represents a failed mutation or lookup.
//
// The taxonomy is deliberately small:
//   - ErrCodeNotFound: the entity does not exist for the given user
//   - ErrCodeValidation: input failed validation; no mutation applied
//   - ErrCodeStorage: the transaction aborted; everything rolled back
//
// Concurrent modification is not a surfaced category - the per-list
// lock serializes would-be conflicts instead of reporting them.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Fields carries field-level validation errors (validation only).
	Fields validate.FieldErrors

	// Err is the underlying cause (storage only).
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the todo/list does not exist for the user.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeValidation indicates input failed validation rules.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeStorage indicates the storage transaction aborted.
	ErrCodeStorage ErrorCode = "STORAGE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Fields.Error())
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if len(e.Fields) > 0 {
		return e.Fields
	}
	return nil
}

// IsNotFound reports whether err is a not-found engine error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeNotFound
	}
	return false
}

// IsValidation reports whether err is a validation engine error.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeValidation
	}
	return false
}

// FieldErrors extracts field-level validation errors from err, or nil
// if err is not a validation error.
func FieldErrors(err error) validate.FieldErrors {
	var ee *Error
	if errors.As(err, &ee) && ee.Code == ErrCodeValidation {
		return ee.Fields
	}
	return nil
}

// notFoundError creates an Error for a missing entity.
func notFoundError(entity string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
	}
}

// validationError creates an Error carrying field-level failures.
func validationError(fields validate.FieldErrors) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: "invalid input",
		Fields:  fields,
	}
}

// storageError wraps a failed storage step.
func storageError(op string, err error) *Error {
	return &Error{
		Code:    ErrCodeStorage,
		Message: op,
		Err:     err,
	}
}
