package notify

import "context"

// Notifier delivers a message to a recipient. Implementations report delivery
// failure via the boolean, never as an error, so the automation cycle can
// continue with other follow-ups after a failed send.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) bool
}
