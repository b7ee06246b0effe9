package api

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrTimeout is the cause of an attempt cancelled by the per-attempt timeout.
var ErrTimeout = errors.New("request timed out")

// RequestError is returned once every attempt of a request has failed. It unwraps to the last failure.
type RequestError struct {
	Endpoint string
	Attempts int
	Cause    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// StatusError reports a non-2xx HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// EnvelopeError reports an envelope with success set to false.
type EnvelopeError struct {
	Message string
}

func (e *EnvelopeError) Error() string {
	return e.Message
}
