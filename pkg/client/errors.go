package client

import (
	"errors"
	"fmt"
)

// Sentinel errors exposed for errors.Is checks.
var (
	// ErrTransport marks connection, DNS and timeout failures.
	// Transport failures are never retried.
	ErrTransport = errors.New("transport failure")

	// ErrDecode marks a 2xx response whose body does not match the
	// expected JSON shape.
	ErrDecode = errors.New("decode response")
)

// APIError is the typed failure returned for any non-2xx, non-429 response,
// and for transport failures (with StatusCode 0 and a wrapped cause).
// 429 responses are retried internally and never surface as an APIError.
type APIError struct {
	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Body is the raw response body text.
	Body string

	// Message is a short human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("api error: %s: %v", e.Message, e.Err)
	case e.Body != "":
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an APIError with HTTP status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
