package model

import (
	"time"

	"github.com/Anirban2958/clapgrow/pkg/constants"
)

// FollowUp is a unit of follow-up work with a due date and a reminder history.
//
// Invariants maintained by the followup package:
//   - SnoozedUntil is non-nil iff Status == Snoozed
//   - CompletedAt is non-nil iff Status == Done
//   - DueDate is never the zero time
type FollowUp struct {
	ID           string             `gorm:"primaryKey;size:36" json:"id"`
	Source       string             `gorm:"size:32;not null" json:"source"`
	Contact      string             `gorm:"size:120;not null" json:"contact"`
	Description  string             `gorm:"not null" json:"description"`
	DueDate      time.Time          `gorm:"type:date;not null" json:"due_date"`
	Priority     constants.Priority `gorm:"type:varchar(16);not null;default:Medium" json:"priority"`
	Status       constants.Status   `gorm:"type:varchar(16);not null;default:Pending" json:"status"`
	SnoozedUntil *time.Time         `gorm:"type:date" json:"snoozed_until,omitempty"`

	NotifyEmail            string     `gorm:"size:255" json:"notify_email,omitempty"`
	DueNotificationSent    bool       `gorm:"not null;default:false" json:"due_notification_sent"`
	SnoozeNotificationSent bool       `gorm:"not null;default:false" json:"snooze_notification_sent"`
	LastNotificationAt     *time.Time `json:"last_notification_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (FollowUp) TableName() string {
	return "followups"
}

// IsOverdue reports whether the follow-up is still pending past its due date.
func (f *FollowUp) IsOverdue(today time.Time) bool {
	return f.Status == constants.StatusPending && f.DueDate.Before(today)
}

// DueLabel formats the date the item will next surface: the snooze date while
// snoozed, the due date otherwise.
func (f *FollowUp) DueLabel() string {
	reference := f.DueDate
	if f.Status == constants.StatusSnoozed && f.SnoozedUntil != nil {
		reference = *f.SnoozedUntil
	}
	return reference.Format("Jan 02, 2006")
}
