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

	// Settings errors
	ErrValidation  ErrorCode = "VALIDATION"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Reconciliation errors
	ErrUnmanagedFile      ErrorCode = "UNMANAGED_FILE"
	ErrSymlinkObstruction ErrorCode = "SYMLINK_OBSTRUCTION"
	ErrMissingArtifacts   ErrorCode = "MISSING_ARTIFACTS"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// KitError represents a structured error with code and details
type KitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KitError) Is(target error) bool {
	var targetErr *KitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KitError with the given code and message
func New(code ErrorCode, message string) *KitError {
	return &KitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KitError {
	return &KitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KitError
func Wrap(err error, code ErrorCode, message string) *KitError {
	if err == nil {
		return nil
	}
	return &KitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KitError {
	if err == nil {
		return nil
	}
	return &KitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KitError) WithDetail(key string, value interface{}) *KitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var kitErr *KitError
	if errors.As(err, &kitErr) {
		return kitErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KitError
func GetErrorCode(err error) ErrorCode {
	var kitErr *KitError
	if errors.As(err, &kitErr) {
		return kitErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a KitError
func GetErrorDetails(err error) map[string]interface{} {
	var kitErr *KitError
	if errors.As(err, &kitErr) {
		return kitErr.Details
	}
	return nil
}

// UserMessage returns the single line shown to the user for err: the
// message of the outermost KitError, or err.Error() for anything else.
func UserMessage(err error) string {
	var kitErr *KitError
	if errors.As(err, &kitErr) {
		if kitErr.Wrapped != nil {
			return kitErr.Message + ": " + UserMessage(kitErr.Wrapped)
		}
		return kitErr.Message
	}
	return err.Error()
}
