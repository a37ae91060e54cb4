package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrBadRequest   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
)

// Internal hides cause from the client behind a generic 500.
func Internal(cause error) *HTTPError {
	return &HTTPError{Code: http.StatusInternalServerError, Message: "internal server error", Err: cause}
}

// Write sends err as a plain-text response. Errors that are not an
// *HTTPError become a generic 500.
func Write(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if !stderrors.As(err, &httpErr) {
		httpErr = Internal(err)
	}
	http.Error(w, httpErr.Message, httpErr.Code)
}
