package model

import (
	"time"

	"github.com/Anirban2958/clapgrow/pkg/constants"
)

// NotificationLog is an append-only audit record of a dispatch attempt. One row
// is written per attempt that resolved a recipient, whether or not the send
// itself succeeded.
type NotificationLog struct {
	ID         string                       `gorm:"primaryKey;size:36" json:"id"`
	FollowUpID string                       `gorm:"size:36;not null;index" json:"followup_id"`
	Channel    string                       `gorm:"size:32;not null" json:"channel"`
	Recipient  string                       `gorm:"size:255;not null" json:"recipient"`
	Reason     constants.NotificationReason `gorm:"size:32;not null" json:"reason"`
	Message    string                       `gorm:"not null" json:"message"`
	CreatedAt  time.Time                    `json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
