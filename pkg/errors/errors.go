package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Rules storage errors
	ErrRulesLoad ErrorCode = "RULES_LOAD"
	ErrRulesSave ErrorCode = "RULES_SAVE"

	// Pattern errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"
	ErrPathInvalid    ErrorCode = "PATH_INVALID"

	// Config errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Clean errors
	ErrCleanFailed ErrorCode = "CLEAN_FAILED"
)

// ClirError represents a structured error with code and details
type ClirError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *ClirError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ClirError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ClirError) Is(target error) bool {
	var targetErr *ClirError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ClirError with the given code and message
func New(code ErrorCode, message string) *ClirError {
	return &ClirError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new ClirError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ClirError {
	return &ClirError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a ClirError
func Wrap(err error, code ErrorCode, message string) *ClirError {
	if err == nil {
		return nil
	}
	return &ClirError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ClirError {
	if err == nil {
		return nil
	}
	return &ClirError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
	}
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var clirErr *ClirError
	if errors.As(err, &clirErr) {
		return clirErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ClirError
func GetErrorCode(err error) ErrorCode {
	var clirErr *ClirError
	if errors.As(err, &clirErr) {
		return clirErr.Code
	}
	return ErrUnknown
}
