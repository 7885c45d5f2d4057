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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Install gate errors
	ErrSpecRead    ErrorCode = "SPEC_READ"
	ErrMarkerRead  ErrorCode = "MARKER_READ"
	ErrCleanup     ErrorCode = "CLEANUP"
	ErrMarkerWrite ErrorCode = "MARKER_WRITE"

	// Toolchain errors
	ErrToolchainMissing ErrorCode = "TOOLCHAIN_MISSING"
	ErrInvalidApp       ErrorCode = "INVALID_APP"
	ErrActionExecute    ErrorCode = "ACTION_EXECUTE"

	// Presubmit errors
	ErrPresubmitFailed ErrorCode = "PRESUBMIT_FAILED"
	ErrReportWrite     ErrorCode = "REPORT_WRITE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// WebtcError represents a structured error with code and details
type WebtcError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WebtcError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WebtcError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *WebtcError) Is(target error) bool {
	var targetErr *WebtcError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WebtcError with the given code and message
func New(code ErrorCode, message string) *WebtcError {
	return &WebtcError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WebtcError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WebtcError {
	return &WebtcError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WebtcError
func Wrap(err error, code ErrorCode, message string) *WebtcError {
	if err == nil {
		return nil
	}
	return &WebtcError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WebtcError {
	if err == nil {
		return nil
	}
	return &WebtcError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WebtcError) WithDetail(key string, value interface{}) *WebtcError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var webErr *WebtcError
		if !errors.As(err, &webErr) {
			return false
		}
		if webErr.Code == code {
			return true
		}
		err = webErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a WebtcError
func GetErrorCode(err error) ErrorCode {
	var webErr *WebtcError
	if errors.As(err, &webErr) {
		return webErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WebtcError
func GetErrorDetails(err error) map[string]interface{} {
	var webErr *WebtcError
	if errors.As(err, &webErr) {
		return webErr.Details
	}
	return nil
}

// ExitError reports a subprocess that ran to completion with a non-zero
// exit status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// ExitCode maps an error to a process exit status: 0 for nil, the child's
// status when the chain carries an *ExitError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
