package domain

import (
	"errors"
	"net/http"
)

// Error codes for business logic errors.
const (
	CodeNotFound        = 1
	CodeAlreadyExists   = 2
	CodeValidation      = 3
	CodeInternal        = 4
	CodeBadRequest      = 5
	CodeUnauthenticated = 6
	CodeForbidden       = 7
	CodeExternal        = 8
	CodeTooManyRequests = 9
)

// AppError represents a business logic error with a code, message, optional
// per-field details, and an optional wrapped error.
type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined business errors.
//
// Match categories with the IsX helpers rather than errors.Is: the helpers
// compare codes, so they also match freshly constructed or wrapped errors.
var (
	ErrNotFound        = &AppError{Code: CodeNotFound, Message: "Record not found"}
	ErrAlreadyExists   = &AppError{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation      = &AppError{Code: CodeValidation, Message: "Validation failed"}
	ErrInternal        = &AppError{Code: CodeInternal, Message: "internal error"}
	ErrUnauthenticated = &AppError{
		Code:    CodeUnauthenticated,
		Message: "Authorization failed",
		Fields:  map[string]string{"authorization": "Missing or invalid token"},
	}
	ErrTooManyRequests = &AppError{Code: CodeTooManyRequests, Message: "Too many requests"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a CodeValidation error carrying field messages.
func NewValidationError(fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

// NewFieldError creates an error with the given code and a single field message.
func NewFieldError(code int, message, field, detail string) *AppError {
	return &AppError{Code: code, Message: message, Fields: map[string]string{field: detail}}
}

// IsNotFound reports whether err is or wraps an AppError with CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsAlreadyExists reports whether err is or wraps an AppError with CodeAlreadyExists.
func IsAlreadyExists(err error) bool {
	return hasCode(err, CodeAlreadyExists)
}

// IsValidation reports whether err is or wraps an AppError with CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsInternal reports whether err is or wraps an AppError with CodeInternal.
func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}

// IsUnauthenticated reports whether err is or wraps an AppError with CodeUnauthenticated.
func IsUnauthenticated(err error) bool {
	return hasCode(err, CodeUnauthenticated)
}

// IsForbidden reports whether err is or wraps an AppError with CodeForbidden.
func IsForbidden(err error) bool {
	return hasCode(err, CodeForbidden)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatusCode maps an error to an HTTP status code.
// Errors that are not an *AppError map to http.StatusInternalServerError.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeAlreadyExists:
			return http.StatusConflict
		case CodeValidation:
			return http.StatusUnprocessableEntity
		case CodeBadRequest:
			return http.StatusBadRequest
		case CodeUnauthenticated:
			return http.StatusUnauthorized
		case CodeForbidden:
			return http.StatusForbidden
		case CodeTooManyRequests:
			return http.StatusTooManyRequests
		case CodeExternal, CodeInternal:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
