package notify

import (
	"context"
	"log"
)

// DryRunNotifier short-circuits delivery and always reports success. Used to
// exercise the automation cycle without contacting any external service.
type DryRunNotifier struct{}

func (DryRunNotifier) Send(ctx context.Context, recipient, subject, body string) bool {
	log.Printf("dry run: skipping email to %s (%s)", recipient, subject)
	return true
}
