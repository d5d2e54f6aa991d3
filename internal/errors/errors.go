package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeLoad    ErrorType = "LOAD"
	ErrTypeFormat  ErrorType = "FORMAT"
	ErrTypePairing ErrorType = "PAIRING"
	ErrTypeExport  ErrorType = "EXPORT"
	ErrTypeConfig  ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for the scanner's error kinds

// NewLoadError creates a load error for a snapshot file
func NewLoadError(path, message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause).WithContext("file", path)
}

// NewMissingColumnError creates a load error for a required column that
// is absent after header normalization
func NewMissingColumnError(path, column string) *AppError {
	return NewAppError(ErrTypeLoad, fmt.Sprintf("required column %q not found", column), nil).
		WithContext("file", path).
		WithContext("column", column)
}

// NewFormatError creates a format error for a non-numeric value,
// identifying the offending row and column
func NewFormatError(path string, rowIndex int, column, value string) *AppError {
	return NewAppError(ErrTypeFormat, fmt.Sprintf("invalid numeric value %q in column %s at row %d", value, column, rowIndex), nil).
		WithContext("file", path).
		WithContext("row", rowIndex).
		WithContext("column", column)
}

// NewPairingError creates a pairing error for directory mode
func NewPairingError(message string) *AppError {
	return NewAppError(ErrTypePairing, message, nil)
}

// NewExportError creates an export error
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
