package errors

import "net/http"

var ErrFolderNameRequired = &Exception{
	Message:    "folder name is required",
	StatusCode: http.StatusBadRequest,
}
