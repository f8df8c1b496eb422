package errors

import "net/http"

var ErrCycleInProgress = &Exception{
	Message:    "an automation cycle is already running",
	StatusCode: http.StatusConflict,
}
