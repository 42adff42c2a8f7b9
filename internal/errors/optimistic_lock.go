package errors

import "net/http"

var ErrOptimisticLock = &Exception{
	Message:    "todo was modified concurrently, reload and retry",
	StatusCode: http.StatusConflict,
}
