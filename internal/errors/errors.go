package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a blogdex error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"    // 401
	ErrForbidden      ErrorCode = "FORBIDDEN"       // 403
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// BlogError represents a structured error with code, status, and details.
type BlogError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *BlogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *BlogError {
	return &BlogError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnauthorized creates a 401 error for missing or rejected credentials.
func NewUnauthorized(msg string) *BlogError {
	return &BlogError{
		Code:    ErrUnauthorized,
		Status:  401,
		Message: msg,
	}
}

// NewForbidden creates a 403 error for a presented but unacceptable token.
func NewForbidden(msg string) *BlogError {
	return &BlogError{
		Code:    ErrForbidden,
		Status:  403,
		Message: msg,
	}
}

// NewPostNotFound creates a 404 error for an unknown post slug.
func NewPostNotFound(slug string) *BlogError {
	return &BlogError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("post not found: %s", slug),
		Details: map[string]any{"slug": slug},
	}
}

// NewNotFound creates a 404 error for a missing resource.
func NewNotFound(msg string) *BlogError {
	return &BlogError{
		Code:    ErrNotFound,
		Status:  404,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the underlying error is kept in Details for logging.
func NewInternal(err error) *BlogError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &BlogError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error (or anything it wraps) is a BlogError with the given code.
func Is(err error, code ErrorCode) bool {
	var bErr *BlogError
	if stderrors.As(err, &bErr) {
		return bErr.Code == code
	}
	return false
}

// As returns err as a *BlogError, wrapping it as INTERNAL when it is not one.
func As(err error) *BlogError {
	var bErr *BlogError
	if stderrors.As(err, &bErr) {
		return bErr
	}
	return NewInternal(err)
}
