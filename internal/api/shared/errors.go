package shared

import (
	"fmt"
	"net/http"
)

// DefaultErrorMessage is sent when an error carries no client-facing message.
const DefaultErrorMessage = "Something went wrong"

// HTTPError is the structured error passed from any handler stage to the
// error funnel: a status code and a client-facing message, optionally
// wrapping the underlying cause for logging.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

// NewHTTPError creates an HTTPError without an underlying cause.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// WrapHTTPError creates an HTTPError that keeps err for logging.
func WrapHTTPError(status int, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Message: message, Err: err}
}

// BadRequest is shorthand for a 400 HTTPError.
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("http %d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the status to send. Anything outside 100-599 becomes 500.
func (e *HTTPError) StatusCode() int {
	return ValidStatus(e.Status)
}

// ValidStatus returns status when net/http can write it, and 500 otherwise.
func ValidStatus(status int) int {
	if status < 100 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// ClientMessage returns the message to send, defaulting to DefaultErrorMessage.
func (e *HTTPError) ClientMessage() string {
	if e.Message == "" {
		return DefaultErrorMessage
	}
	return e.Message
}
