package errors

import "net/http"

var ErrInvalidStatus = &Exception{
	Message:    "unsupported status",
	StatusCode: http.StatusBadRequest,
}
