package errors

import "net/http"

var ErrInvalidFolderColor = &Exception{
	Message:    "color is not in the folder palette",
	StatusCode: http.StatusBadRequest,
}
