package errors

import "net/http"

var ErrFolderNotFound = &Exception{
	Message:    "folder not found",
	StatusCode: http.StatusNotFound,
}
