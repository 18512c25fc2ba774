package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an error before it is mapped to a transport status.
type ErrorType string

const (
	// ErrorTypeValidation means client input violated the allow-listed shape.
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeNotFound means the requested record is absent.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeSourceNotFound means an import source object is absent.
	ErrorTypeSourceNotFound ErrorType = "SOURCE_NOT_FOUND"
	// ErrorTypeStorage means an underlying store operation failed.
	ErrorTypeStorage ErrorType = "STORAGE"
	// ErrorTypeExternal means an external collaborator misbehaved,
	// e.g. a malformed import source.
	ErrorTypeExternal ErrorType = "EXTERNAL"
	// ErrorTypeInternal is the fallback for everything unclassified.
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError is the application error carried across service boundaries.
// Transport layers map it to a status via HTTPStatus instead of deciding
// per call site.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Violations []string  `json:"violations,omitempty"`
	Cause      error     `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error carrying the complete
// list of violated constraints.
func NewValidationError(violations ...string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    "Invalid request",
		Violations: violations,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error for the named resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewSourceNotFoundError signals a missing import object.
func NewSourceNotFoundError(bucket, key string) *AppError {
	return &AppError{
		Type:       ErrorTypeSourceNotFound,
		Message:    fmt.Sprintf("no object found at s3://%s/%s", bucket, key),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewStorageError wraps a failed store operation.
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    fmt.Sprintf("storage operation failed: %s", operation),
		Cause:      cause,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewExternalError reports a misbehaving external collaborator.
func NewExternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// GetAppError extracts an AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsNotFound reports whether err signals an absent record.
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsValidation reports whether err signals rejected client input.
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsSourceNotFound reports whether err signals a missing import object.
func IsSourceNotFound(err error) bool {
	return IsType(err, ErrorTypeSourceNotFound)
}

// HTTPStatusOf maps an error to a transport status by its classification.
// Unclassified errors are treated as internal failures.
func HTTPStatusOf(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
