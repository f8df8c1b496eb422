package errors

import "net/http"

var ErrPastSnoozeDate = &Exception{
	Message:    "snoozing requires a snooze-until date that is today or later",
	StatusCode: http.StatusBadRequest,
}
