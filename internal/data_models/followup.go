package dto

// CreateFollowUpRequest is the JSON/form payload for creating a follow-up.
// Dates are YYYY-MM-DD strings.
type CreateFollowUpRequest struct {
	Source       string `json:"source" form:"source"`
	Contact      string `json:"contact" form:"contact"`
	Description  string `json:"description" form:"description"`
	DueDate      string `json:"due_date" form:"due_date"`
	Priority     string `json:"priority" form:"priority"`
	Status       string `json:"status" form:"status"`
	SnoozedUntil string `json:"snoozed_until" form:"snoozed_until"`
	NotifyEmail  string `json:"notify_email" form:"notify_email"`
}

// UpdateFollowUpRequest is a partial update; absent fields stay unchanged.
type UpdateFollowUpRequest struct {
	Source       *string `json:"source"`
	Contact      *string `json:"contact"`
	Description  *string `json:"description"`
	DueDate      *string `json:"due_date"`
	Priority     *string `json:"priority"`
	Status       *string `json:"status"`
	SnoozedUntil *string `json:"snoozed_until"`
	NotifyEmail  *string `json:"notify_email"`
}
