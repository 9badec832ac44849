package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidPeriod indicates a month/year pair outside the supported budgeting range.
var ErrInvalidPeriod = errors.New("invalid budget period")

// ErrForbidden indicates the authenticated user may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that rejects the operation.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and a
// caller-facing message. Handlers use the code directly; services use the
// sentinel errors above for branching.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// NewAppError creates an AppError with an explicit code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewBadRequestError creates a 400 AppError wrapping ErrValidation.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewUnauthorizedError creates a 401 AppError wrapping ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

// NewInternalServerError creates a 500 AppError wrapping ErrInternal.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: ErrInternal}
}

// NewGatewayTimeoutError creates a 504 AppError for upstream provider failures.
func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Message: message, Err: ErrInternal}
}
