package errors

import "net/http"

var ErrFollowUpNotFound = &Exception{
	Message:    "follow-up not found",
	StatusCode: http.StatusNotFound,
}
