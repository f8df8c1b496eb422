package followup

import (
	"fmt"
	"time"

	"github.com/Anirban2958/clapgrow/pkg/constants"
	model "github.com/Anirban2958/clapgrow/pkg/models"
)

// GraceDays is the fixed window after the due date during which overdue
// reminders keep firing.
const GraceDays = 7

// DefaultLookaheadDays is how many days before the due date reminders start.
const DefaultLookaheadDays = 3

// ShouldRemind decides whether a daily reminder is due for f on the given day.
// At most one reminder fires per follow-up per calendar day.
func ShouldRemind(f *model.FollowUp, today time.Time, lookaheadDays int) bool {
	if f.Status != constants.StatusPending || f.DueDate.IsZero() {
		return false
	}

	daysUntilDue := DaysBetween(today, f.DueDate)
	if daysUntilDue > lookaheadDays || daysUntilDue < -GraceDays {
		return false
	}

	if f.LastNotificationAt != nil && sameDay(*f.LastNotificationAt, today) {
		return false
	}

	return true
}

// Contents is a rendered notification title and body.
type Contents struct {
	Title   string
	Message string
}

// BuildContents renders the notification text for a follow-up. The due_soon
// wording escalates as the due date approaches and passes.
func BuildContents(f *model.FollowUp, reason constants.NotificationReason, today time.Time) Contents {
	dueText := f.DueDate.Format("Jan 02, 2006")
	base := fmt.Sprintf("Follow-up '%s' for %s", f.Description, f.Contact)

	switch reason {
	case constants.ReasonDueSoon:
		daysUntilDue := DaysBetween(today, f.DueDate)
		switch {
		case daysUntilDue > 1:
			return Contents{
				Title: fmt.Sprintf("Follow-up due in %d days", daysUntilDue),
				Message: fmt.Sprintf(
					"%s is due in %d days (on %s). Source: %s. Priority: %s.",
					base, daysUntilDue, dueText, f.Source, f.Priority,
				),
			}
		case daysUntilDue == 1:
			return Contents{
				Title: "Follow-up due TOMORROW!",
				Message: fmt.Sprintf(
					"%s is due TOMORROW (%s). Source: %s. Priority: %s. Take action soon!",
					base, dueText, f.Source, f.Priority,
				),
			}
		case daysUntilDue == 0:
			return Contents{
				Title: "Follow-up due TODAY!",
				Message: fmt.Sprintf(
					"%s is due TODAY (%s). Source: %s. Priority: %s. Take action now!",
					base, dueText, f.Source, f.Priority,
				),
			}
		default:
			daysOverdue := -daysUntilDue
			return Contents{
				Title: fmt.Sprintf("Follow-up OVERDUE by %d day%s!", daysOverdue, plural(daysOverdue)),
				Message: fmt.Sprintf(
					"URGENT: %s is %d day%s overdue! Was due on %s. Source: %s. Priority: %s. Please take immediate action!",
					base, daysOverdue, plural(daysOverdue), dueText, f.Source, f.Priority,
				),
			}
		}
	case constants.ReasonSnoozeReleased:
		return Contents{
			Title: "Snoozed follow-up is back",
			Message: fmt.Sprintf(
				"%s is ready for action today. Original due date: %s. Source: %s. Priority: %s.",
				base, dueText, f.Source, f.Priority,
			),
		}
	default:
		return Contents{Title: string(reason), Message: base}
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
