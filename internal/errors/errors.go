package errors

import (
	"fmt"
	"strings"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeSchemaInvalid   = "SCHEMA_INVALID"
	CodeGeometryInvalid = "GEOMETRY_INVALID"
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// SchemaInvalid reports missing or unparseable input columns. The column
// names are part of the message so the caller can show the user exactly
// which columns broke the upload.
func SchemaInvalid(columns ...string) *AppError {
	return New(CodeSchemaInvalid, fmt.Sprintf("required column(s) missing or invalid: %s", strings.Join(columns, ", ")))
}

// GeometryInvalid reports a degenerate panel geometry
func GeometryInvalid(message string) *AppError {
	return New(CodeGeometryInvalid, message)
}

// ConfigInvalid reports an invalid configuration value
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DatabaseError reports a storage failure
func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

// InvalidInput reports a malformed request value
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// NotFound reports a missing resource
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}
