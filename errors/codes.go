package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Lifecycle errors
const (
	// ErrCodeNotReady indicates a client was used before its address was resolved.
	ErrCodeNotReady ErrorCode = "NOT_READY"
	// ErrCodeAlreadyInitialized indicates a second initialization attempt.
	ErrCodeAlreadyInitialized ErrorCode = "ALREADY_INITIALIZED"
	// ErrCodeServiceNotFound indicates the provider returned no address for a service.
	ErrCodeServiceNotFound ErrorCode = "SERVICE_NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidArgument indicates a request argument or config value is invalid.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Connection/Availability errors (retryable)
const (
	// ErrCodeTimeout indicates the call was cancelled or its deadline expired.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeConnectionFailed indicates the transport could not complete the exchange.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
)

// Remote errors
const (
	// ErrCodeRequestFailed indicates the remote service answered with 4xx/5xx.
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:          true,
	ErrCodeConnectionFailed: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
