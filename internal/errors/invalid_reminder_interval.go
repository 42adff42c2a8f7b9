package errors

import "net/http"

var ErrInvalidReminderInterval = &Exception{
	Message:    "reminder interval must not be negative",
	StatusCode: http.StatusBadRequest,
}
