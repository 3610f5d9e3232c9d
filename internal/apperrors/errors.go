package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrTransient indicates a persistence failure that is expected to succeed on retry
// (serialization failure, deadlock, dropped connection).
var ErrTransient = errors.New("transient storage error")

// Journal batch validation errors. Each maps to one distinct check so callers
// can act on the specific rule that failed.
var (
	ErrUnbalancedBatch    = errors.New("batch debits and credits are not equal")
	ErrInsufficientLines  = errors.New("batch must have at least two entries")
	ErrMixedSidesOnAccount = errors.New("account appears on both sides of the batch")
	ErrUnknownAccount     = errors.New("account not found in the tenant registry")
)

// AppError wraps an underlying error with a stable code and message.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsTransient reports whether err should be retried by the commit path.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
