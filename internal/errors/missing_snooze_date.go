package errors

import "net/http"

var ErrMissingSnoozeDate = &Exception{
	Message:    "snoozing requires a snooze-until date",
	StatusCode: http.StatusBadRequest,
}
