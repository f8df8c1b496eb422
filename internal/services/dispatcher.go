package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Anirban2958/clapgrow/internal/followup"
	"github.com/Anirban2958/clapgrow/internal/notify"
	repository "github.com/Anirban2958/clapgrow/internal/repositories"
	"github.com/Anirban2958/clapgrow/pkg/constants"
	model "github.com/Anirban2958/clapgrow/pkg/models"
)

// Dispatcher resolves the recipient for a follow-up, records every attempt in
// the notification log, and invokes the notifier.
type Dispatcher struct {
	notifier         notify.Notifier
	defaultRecipient string
	clock            followup.Clock
}

func NewDispatcher(notifier notify.Notifier, defaultRecipient string, clock followup.Clock) *Dispatcher {
	return &Dispatcher{
		notifier:         notifier,
		defaultRecipient: defaultRecipient,
		clock:            clock,
	}
}

// Dispatch attempts a notification for f and reports whether it was sent.
// When a recipient resolves, the log entry is appended through repo before the
// send, so failed deliveries still leave an audit trail. Without a recipient
// nothing is logged and the dispatch reports "not sent".
//
// The caller supplies today so every message in one cycle frames its day
// counts against the same date, even when the cycle crosses midnight.
func (d *Dispatcher) Dispatch(ctx context.Context, repo *repository.FollowUpRepository, f *model.FollowUp, reason constants.NotificationReason, today time.Time) (bool, error) {
	recipient := d.resolveRecipient(f.NotifyEmail)
	if recipient == "" {
		log.Printf("no recipient for follow-up %s (%s); notification skipped", f.ID, reason)
		return false, nil
	}

	contents := followup.BuildContents(f, reason, today)

	entry := &model.NotificationLog{
		FollowUpID: f.ID,
		Channel:    constants.ChannelEmail,
		Recipient:  recipient,
		Reason:     reason,
		Message:    contents.Title + ": " + contents.Message,
		CreatedAt:  d.clock.Now(),
	}
	if err := repo.AppendLog(ctx, entry); err != nil {
		return false, err
	}

	sent := d.notifier.Send(ctx, recipient, contents.Title, contents.Message)
	if !sent {
		log.Printf("notification for follow-up %s reason %s logged but not delivered", f.ID, reason)
	}
	return sent, nil
}

func (d *Dispatcher) resolveRecipient(override string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(d.defaultRecipient)
}
