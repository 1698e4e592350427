package rest

import (
	stderrors "errors"
	"net/http"

	apperrors "github.com/kbukum/restclient/errors"
)

var (
	// ErrRequestFailed is wrapped by every *RequestError.
	ErrRequestFailed = stderrors.New("rest: request failed")
	// ErrRequestConsumed is returned when a Request is called a second time.
	ErrRequestConsumed = stderrors.New("rest: request already called")
)

// unknownErrorMessage is used when an error body has no "error" field.
const unknownErrorMessage = "Unknown error"

// RequestError is returned for responses with a 4xx or 5xx status other
// than 404.
type RequestError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is the "error" field of a JSON body, or "Unknown error".
	Message string
	// Body is the parsed JSON body, or the raw text when it is not JSON.
	Body any
	// RawBody is the response body as received.
	RawBody string
	// Response is the original response. Its body has already been read
	// and closed.
	Response *http.Response
}

// Error returns the error message reported by the remote service.
func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap returns ErrRequestFailed.
func (e *RequestError) Unwrap() error {
	return ErrRequestFailed
}

// Code returns the error code shared with AppError.
func (e *RequestError) Code() apperrors.ErrorCode {
	return apperrors.ErrCodeRequestFailed
}

// Retryable reports whether the status suggests a retry may succeed.
func (e *RequestError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// AsRequestError extracts a *RequestError from err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// a *RequestError.
func StatusCode(err error) int {
	if re, ok := AsRequestError(err); ok {
		return re.StatusCode
	}
	return 0
}
