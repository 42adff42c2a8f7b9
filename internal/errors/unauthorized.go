package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "authorization required",
	StatusCode: http.StatusUnauthorized,
}
