package constants

// NotificationReason records why a notification was dispatched.
type NotificationReason string

const (
	ReasonDueSoon        NotificationReason = "due_soon"
	ReasonSnoozeReleased NotificationReason = "snooze_released"
)

// ChannelEmail is the only delivery channel currently supported.
const ChannelEmail = "email"
