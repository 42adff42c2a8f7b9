package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err. Errors that are not
// exceptions are reported with fallback so internals do not leak.
func Message(err error, fallback string) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
