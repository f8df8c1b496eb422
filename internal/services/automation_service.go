package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Anirban2958/clapgrow/internal/cyclelock"
	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
	"github.com/Anirban2958/clapgrow/internal/followup"
	repository "github.com/Anirban2958/clapgrow/internal/repositories"
	"github.com/Anirban2958/clapgrow/pkg/constants"
	model "github.com/Anirban2958/clapgrow/pkg/models"
)

// CycleStats summarizes one automation cycle.
type CycleStats struct {
	Evaluated     int `json:"evaluated"`
	RemindersSent int `json:"reminders_sent"`
	Released      int `json:"released"`
}

// AutomationService runs the periodic automation cycle: daily due-soon
// reminders for open follow-ups, then release of expired snoozes with
// immediate re-evaluation of the released items.
type AutomationService struct {
	repo          *repository.FollowUpRepository
	dispatcher    *Dispatcher
	lock          cyclelock.Locker
	clock         followup.Clock
	lookaheadDays int
}

func NewAutomationService(
	repo *repository.FollowUpRepository,
	dispatcher *Dispatcher,
	lock cyclelock.Locker,
	clock followup.Clock,
	lookaheadDays int,
) *AutomationService {
	if lookaheadDays <= 0 {
		lookaheadDays = followup.DefaultLookaheadDays
	}
	return &AutomationService{
		repo:          repo,
		dispatcher:    dispatcher,
		lock:          lock,
		clock:         clock,
		lookaheadDays: lookaheadDays,
	}
}

// RunCycle executes one automation pass under the cycle lock, using a single
// "today" throughout. All writes commit together; a store failure rolls the
// whole cycle back and the next scheduled tick retries. The snooze-release
// phase runs after the reminder phase so newly released items are caught in
// the same cycle.
func (s *AutomationService) RunCycle(ctx context.Context) (CycleStats, error) {
	if err := s.lock.Acquire(ctx); err != nil {
		if errors.Is(err, cyclelock.ErrCycleLocked) {
			return CycleStats{}, apperrors.ErrCycleInProgress
		}
		return CycleStats{}, err
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			log.Printf("failed to release cycle lock: %v", err)
		}
	}()

	today := s.clock.Today()
	var stats CycleStats

	err := s.repo.Transaction(ctx, func(tx *repository.FollowUpRepository) error {
		from := today.AddDate(0, 0, -followup.GraceDays)
		to := today.AddDate(0, 0, s.lookaheadDays)

		pending, err := tx.ListPendingDueBetween(ctx, from, to)
		if err != nil {
			return err
		}
		for i := range pending {
			stats.Evaluated++
			sent, err := s.remind(ctx, tx, &pending[i], today)
			if err != nil {
				return err
			}
			if sent {
				stats.RemindersSent++
			}
		}

		snoozed, err := tx.ListSnoozedDueBy(ctx, today)
		if err != nil {
			return err
		}
		for i := range snoozed {
			f := &snoozed[i]
			if err := s.release(ctx, tx, f, today); err != nil {
				return err
			}
			stats.Released++

			// A released item may already be inside the reminder window
			// (or overdue); it gets its due-soon reminder in this pass
			// rather than waiting for the next tick.
			sent, err := s.remind(ctx, tx, f, today)
			if err != nil {
				return err
			}
			if sent {
				stats.RemindersSent++
			}
		}

		return nil
	})
	if err != nil {
		return CycleStats{}, err
	}

	if stats.RemindersSent > 0 || stats.Released > 0 {
		log.Printf("automation cycle: %d evaluated, %d reminders sent, %d snoozes released",
			stats.Evaluated, stats.RemindersSent, stats.Released)
	}
	return stats, nil
}

func (s *AutomationService) remind(ctx context.Context, tx *repository.FollowUpRepository, f *model.FollowUp, today time.Time) (bool, error) {
	if !followup.ShouldRemind(f, today, s.lookaheadDays) {
		return false, nil
	}

	sent, err := s.dispatcher.Dispatch(ctx, tx, f, constants.ReasonDueSoon, today)
	if err != nil {
		return false, err
	}
	if !sent {
		// Not marking the follow-up keeps it eligible, so the next cycle
		// retries organically through the daily check.
		return false, nil
	}

	now := s.clock.Now()
	f.LastNotificationAt = &now
	f.UpdatedAt = now
	if err := tx.Save(ctx, f); err != nil {
		return false, err
	}
	return true, nil
}

// release moves a snoozed follow-up back to Pending once its snooze date has
// arrived, resetting reminder tracking so the cadence restarts cleanly, and
// dispatches the one-shot snooze_released notification.
func (s *AutomationService) release(ctx context.Context, tx *repository.FollowUpRepository, f *model.FollowUp, today time.Time) error {
	now := s.clock.Now()
	f.Status = constants.StatusPending
	f.SnoozedUntil = nil
	f.DueNotificationSent = false
	f.LastNotificationAt = nil
	f.UpdatedAt = now

	sent, err := s.dispatcher.Dispatch(ctx, tx, f, constants.ReasonSnoozeReleased, today)
	if err != nil {
		return err
	}
	if sent {
		f.SnoozeNotificationSent = true
	}

	return tx.Save(ctx, f)
}
