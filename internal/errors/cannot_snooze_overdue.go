package errors

import "net/http"

var ErrCannotSnoozeOverdue = &Exception{
	Message:    "cannot snooze an overdue follow-up, update the due date first",
	StatusCode: http.StatusBadRequest,
}
