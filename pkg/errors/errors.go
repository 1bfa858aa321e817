package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure kind. Codes are stable: the command layer
// reports them verbatim and tests match on them.
type ErrorCode string

// Error codes for the recipe pipeline
const (
	// General errors
	ErrUnknown          ErrorCode = "unknown_error"
	ErrInvalidArguments ErrorCode = "invalid_arguments"
	ErrConfigLoad       ErrorCode = "config_load"

	// Recipe errors
	ErrFileNotFound   ErrorCode = "file_not_found"
	ErrRecipeFetch    ErrorCode = "recipe_fetch"
	ErrRecipeParse    ErrorCode = "recipe_parse_error"
	ErrTemplateSyntax ErrorCode = "template_syntax"

	// Plugin errors
	ErrPluginNotFound ErrorCode = "plugin_not_found"
	ErrPluginLoad     ErrorCode = "plugin_load"

	// Registry errors
	ErrAlreadyRegistered ErrorCode = "already_registered"
	ErrNotRegistered     ErrorCode = "not_registered"

	// FileSystem errors
	ErrFileWriteConflict ErrorCode = "file_write_conflict"
	ErrFileWrite         ErrorCode = "file_write"
)

// QuickenError represents a structured error with code and details
type QuickenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *QuickenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *QuickenError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code
func (e *QuickenError) Is(target error) bool {
	var targetErr *QuickenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new QuickenError with the given code and message
func New(code ErrorCode, message string) *QuickenError {
	return &QuickenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new QuickenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *QuickenError {
	return &QuickenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a QuickenError
func Wrap(err error, code ErrorCode, message string) *QuickenError {
	if err == nil {
		return nil
	}
	return &QuickenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *QuickenError {
	if err == nil {
		return nil
	}
	return &QuickenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *QuickenError) WithDetail(key string, value interface{}) *QuickenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var qErr *QuickenError
	if errors.As(err, &qErr) {
		return qErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a QuickenError
func GetErrorCode(err error) ErrorCode {
	var qErr *QuickenError
	if errors.As(err, &qErr) {
		return qErr.Code
	}
	return ErrUnknown
}

// IsCoded reports whether err carries a QuickenError anywhere in its chain.
func IsCoded(err error) bool {
	var qErr *QuickenError
	return errors.As(err, &qErr)
}

// GetErrorDetails returns the details from an error, or nil if not a QuickenError
func GetErrorDetails(err error) map[string]interface{} {
	var qErr *QuickenError
	if errors.As(err, &qErr) {
		return qErr.Details
	}
	return nil
}

// Conflict builds the error reported when a target file already exists and
// overwriting was not requested.
func Conflict(path string) *QuickenError {
	return Newf(ErrFileWriteConflict, "could not create file %s", path).WithDetail("path", path)
}

// Message returns err's text without the "[code]" prefix of the outermost
// QuickenError. Errors without a code are returned as is.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var qErr *QuickenError
	if !errors.As(err, &qErr) {
		return err.Error()
	}
	if qErr.Wrapped != nil {
		return qErr.Message + ": " + qErr.Wrapped.Error()
	}
	return qErr.Message
}
