package followup

import (
	"strings"
	"time"

	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
	"github.com/Anirban2958/clapgrow/pkg/constants"
	model "github.com/Anirban2958/clapgrow/pkg/models"
)

// StatusChange describes a requested transition on an existing follow-up.
// DueDate and SnoozedUntil are optional; a nil DueDate keeps the current one
// unless the snooze-alignment rule overrides it.
type StatusChange struct {
	Status       constants.Status
	DueDate      *time.Time
	SnoozedUntil *time.Time
}

// Transition validates and applies a status change to f. Rules are evaluated
// in a fixed order; a returned error means f was not modified.
func Transition(f *model.FollowUp, change StatusChange, today, now time.Time) error {
	switch change.Status {
	case constants.StatusPending, constants.StatusDone, constants.StatusSnoozed:
	default:
		return apperrors.ErrInvalidStatus
	}

	today = DateOnly(today)

	if change.Status == constants.StatusSnoozed {
		if change.SnoozedUntil == nil {
			return apperrors.ErrMissingSnoozeDate
		}
		if DateOnly(*change.SnoozedUntil).Before(today) {
			return apperrors.ErrPastSnoozeDate
		}
		// An overdue item must have its due date corrected before it can
		// be snoozed.
		effectiveDue := f.DueDate
		if change.DueDate != nil {
			effectiveDue = *change.DueDate
		}
		if f.Status == constants.StatusPending && DateOnly(effectiveDue).Before(today) {
			return apperrors.ErrCannotSnoozeOverdue
		}
	}

	previous := f.Status
	f.Status = change.Status

	if change.Status == constants.StatusSnoozed {
		snooze := DateOnly(*change.SnoozedUntil)
		f.SnoozedUntil = &snooze
	} else {
		f.SnoozedUntil = nil
	}

	dueChanged := false
	switch {
	case change.DueDate != nil:
		newDue := DateOnly(*change.DueDate)
		dueChanged = !f.DueDate.Equal(newDue)
		f.DueDate = newDue
	case change.Status == constants.StatusSnoozed:
		// Keep the visible due date aligned with when the item resurfaces.
		snooze := DateOnly(*change.SnoozedUntil)
		dueChanged = !f.DueDate.Equal(snooze)
		f.DueDate = snooze
	}

	if dueChanged {
		// A changed deadline restarts the reminder cadence.
		f.DueNotificationSent = false
		f.LastNotificationAt = nil
	}

	switch change.Status {
	case constants.StatusDone:
		completed := now
		f.CompletedAt = &completed
		f.DueNotificationSent = true
		f.SnoozeNotificationSent = true
		f.LastNotificationAt = nil
	case constants.StatusPending:
		f.CompletedAt = nil
		if previous != constants.StatusPending {
			f.DueNotificationSent = false
			f.LastNotificationAt = nil
		}
	case constants.StatusSnoozed:
		f.CompletedAt = nil
		// A fresh release event must notify again. LastNotificationAt is
		// left untouched so the daily-reminder cooldown persists across
		// the snooze.
		f.SnoozeNotificationSent = false
	}

	f.UpdatedAt = now
	return nil
}

// SetDueDate changes the due date outside of a status transition (field edits
// from the API). Any change restarts the reminder cadence.
func SetDueDate(f *model.FollowUp, due time.Time) {
	due = DateOnly(due)
	if f.DueDate.Equal(due) {
		return
	}
	f.DueDate = due
	f.DueNotificationSent = false
	f.LastNotificationAt = nil
}

// CreateInput carries the fields of a brand-new follow-up before validation.
type CreateInput struct {
	Source       string
	Contact      string
	Description  string
	DueDate      *time.Time
	Priority     constants.Priority
	Status       constants.Status
	SnoozedUntil *time.Time
	NotifyEmail  string
}

// New validates in and builds a follow-up. Mirrors the transition snooze rules
// but operates on a brand-new record; the repository assigns the id.
func New(in CreateInput, today, now time.Time) (*model.FollowUp, error) {
	source := strings.TrimSpace(in.Source)
	if source == "" {
		return nil, apperrors.NewValidation("source is required")
	}
	contact := strings.TrimSpace(in.Contact)
	if contact == "" {
		return nil, apperrors.NewValidation("contact is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, apperrors.NewValidation("description is required")
	}
	if in.DueDate == nil {
		return nil, apperrors.NewValidation("due date is required")
	}

	priority := in.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	status := in.Status
	if status == "" {
		status = constants.StatusPending
	}
	switch status {
	case constants.StatusPending, constants.StatusDone, constants.StatusSnoozed:
	default:
		return nil, apperrors.ErrInvalidStatus
	}

	today = DateOnly(today)
	due := DateOnly(*in.DueDate)

	var snoozedUntil *time.Time
	if status == constants.StatusSnoozed {
		if in.SnoozedUntil == nil {
			return nil, apperrors.ErrMissingSnoozeDate
		}
		snooze := DateOnly(*in.SnoozedUntil)
		if snooze.Before(today) {
			return nil, apperrors.ErrPastSnoozeDate
		}
		snoozedUntil = &snooze
		if due.Before(snooze) {
			due = snooze
		}
	}

	f := &model.FollowUp{
		Source:       source,
		Contact:      contact,
		Description:  description,
		DueDate:      due,
		Priority:     priority,
		Status:       status,
		SnoozedUntil: snoozedUntil,
		NotifyEmail:  strings.TrimSpace(in.NotifyEmail),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == constants.StatusDone {
		completed := now
		f.CompletedAt = &completed
	}
	return f, nil
}
