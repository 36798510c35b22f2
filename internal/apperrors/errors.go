package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation violates a business uniqueness rule,
// e.g. an officer or vehicle already has an active assignment on the date.
var ErrConflict = errors.New("conflicting resource state")

// ErrNoActiveAssignment indicates a field transaction was submitted by a user
// without an ACTIVE assignment.
var ErrNoActiveAssignment = errors.New("no active assignment for user")

// ErrConcurrentUpdate indicates an optimistic-concurrency (revision) check
// failed; the caller may retry the whole read-validate-write sequence.
var ErrConcurrentUpdate = errors.New("concurrent update detected")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// InsufficientStockError reports a field consumption that exceeds the
// assignment's live balance for one denomination. The whole transaction is
// rejected; the caller gets enough detail to render a specific message.
type InsufficientStockError struct {
	Denomination int64
	Available    int64
	Requested    int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for denomination %d: available %d, requested %d",
		e.Denomination, e.Available, e.Requested)
}

// NewInsufficientStockError builds an InsufficientStockError.
func NewInsufficientStockError(denomination, available, requested int64) *InsufficientStockError {
	return &InsufficientStockError{Denomination: denomination, Available: available, Requested: requested}
}

// AppError wraps storage-layer failures with an HTTP-ish code and a message
// for diagnostics. The engine's detail is kept in Err.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
