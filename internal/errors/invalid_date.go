package errors

import "net/http"

var ErrInvalidDate = &Exception{
	Message:    "invalid date format, use YYYY-MM-DD",
	StatusCode: http.StatusBadRequest,
}
