package errors

import "net/http"

var ErrFolderIDRequired = &Exception{
	Message:    "folder id is required",
	StatusCode: http.StatusBadRequest,
}
