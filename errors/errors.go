package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type of this module.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// NotReady is returned when a client is used before its address is resolved.
func NotReady(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotReady, Message: fmt.Sprintf("client for %s is not ready yet", resource),
		Details: map[string]any{"resource": resource},
	}
}

// AlreadyInitialized is returned when a client is initialized a second time.
func AlreadyInitialized(resource string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyInitialized, Message: fmt.Sprintf("client for %s is already initialized", resource),
		Details: map[string]any{"resource": resource},
	}
}

// ServiceNotFound is returned when no address is known for a resource.
func ServiceNotFound(resource, serviceType string) *AppError {
	return &AppError{
		Code: ErrCodeServiceNotFound, Message: fmt.Sprintf("service %s not found", resource),
		Details: map[string]any{"resource": resource, "service_type": serviceType},
	}
}

// InvalidArgument is returned when an argument cannot be rendered.
func InvalidArgument(name, reason string) *AppError {
	details := make(map[string]any)
	if name != "" {
		details["argument"] = name
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: reason, Details: details,
	}
}

// Timeout wraps a transport error observed after the call context was done.
func Timeout(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s was cancelled or timed out", operation),
		Retryable: true, Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// ConnectionFailed wraps a transport error that was not caused by cancellation.
func ConnectionFailed(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("unable to reach %s", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// --- Inspection helpers ---

// AsAppError extracts the first *AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsNotReady checks if an error is a NOT_READY error.
func IsNotReady(err error) bool { return HasCode(err, ErrCodeNotReady) }

// IsAlreadyInitialized checks if an error is an ALREADY_INITIALIZED error.
func IsAlreadyInitialized(err error) bool { return HasCode(err, ErrCodeAlreadyInitialized) }

// IsServiceNotFound checks if an error is a SERVICE_NOT_FOUND error.
func IsServiceNotFound(err error) bool { return HasCode(err, ErrCodeServiceNotFound) }

// IsInvalidArgument checks if an error is an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool { return HasCode(err, ErrCodeInvalidArgument) }

// IsTimeout checks if an error is a TIMEOUT error.
func IsTimeout(err error) bool { return HasCode(err, ErrCodeTimeout) }

// IsConnectionFailed checks if an error is a CONNECTION_FAILED error.
func IsConnectionFailed(err error) bool { return HasCode(err, ErrCodeConnectionFailed) }

// IsRetryable checks if err carries a retryable AppError.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}
