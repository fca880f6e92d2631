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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Operator interaction
	ErrUserAbort ErrorCode = "USER_ABORT"

	// Reconciliation outcomes
	ErrAlreadySatisfied ErrorCode = "ALREADY_SATISFIED"
	ErrMissingMarker    ErrorCode = "MISSING_REMOTE_MARKER"
	ErrInstall          ErrorCode = "INSTALL_FAILURE"
	ErrPersistence      ErrorCode = "PERSISTENCE_FAILURE"
	ErrMount            ErrorCode = "MOUNT_FAILURE"
	ErrSymlinkCreate    ErrorCode = "SYMLINK_CREATE"
	ErrScheduleInvalid  ErrorCode = "SCHEDULE_INVALID"

	// Remote probing
	ErrRemoteUnreachable ErrorCode = "REMOTE_UNREACHABLE"
	ErrAuthFailed        ErrorCode = "AUTH_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Filesystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// SkyhookError represents a structured error with code and details
type SkyhookError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SkyhookError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SkyhookError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SkyhookError) Is(target error) bool {
	var targetErr *SkyhookError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SkyhookError with the given code and message
func New(code ErrorCode, message string) *SkyhookError {
	return &SkyhookError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SkyhookError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SkyhookError {
	return &SkyhookError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SkyhookError
func Wrap(err error, code ErrorCode, message string) *SkyhookError {
	if err == nil {
		return nil
	}
	return &SkyhookError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SkyhookError {
	if err == nil {
		return nil
	}
	return &SkyhookError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SkyhookError) WithDetail(key string, value interface{}) *SkyhookError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SkyhookError) WithDetails(details map[string]interface{}) *SkyhookError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var skyErr *SkyhookError
	if errors.As(err, &skyErr) {
		return skyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// it is not a SkyhookError
func GetErrorCode(err error) ErrorCode {
	var skyErr *SkyhookError
	if errors.As(err, &skyErr) {
		return skyErr.Code
	}
	return ErrUnknown
}

// ExitCode maps an error to the process exit status. A declined run and
// state that already matched both count as success; every fatal
// condition exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetErrorCode(err) {
	case ErrUserAbort, ErrAlreadySatisfied:
		return 0
	default:
		return 1
	}
}
