package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Anirban2958/clapgrow/internal/cyclelock"
	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
	"github.com/Anirban2958/clapgrow/internal/followup"
	repository "github.com/Anirban2958/clapgrow/internal/repositories"
	"github.com/Anirban2958/clapgrow/pkg/constants"
)

type countingTrigger struct {
	kicks int
}

func (t *countingTrigger) Kick() {
	t.kicks++
}

func newFollowUpService(t *testing.T) (*FollowUpService, *repository.FollowUpRepository, *countingTrigger) {
	t.Helper()

	repo := repository.NewFollowUpRepository(setupTestDB(t))
	trigger := &countingTrigger{}
	service := NewFollowUpService(repo, newFakeClock(), trigger)
	return service, repo, trigger
}

func dueIn(days int) *followup.CreateInput {
	due := testToday.AddDate(0, 0, days)
	return &followup.CreateInput{
		Source:      "Email",
		Contact:     "Dana",
		Description: "Call about renewal",
		DueDate:     &due,
	}
}

func TestServiceCreateKicksTrigger(t *testing.T) {
	service, repo, trigger := newFollowUpService(t)

	f, err := service.Create(context.Background(), *dueIn(2))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if f.ID == "" {
		t.Error("expected an assigned id")
	}
	if trigger.kicks != 1 {
		t.Errorf("kicks = %d, want 1 after creating a pending follow-up", trigger.kicks)
	}

	stored, err := repo.FindByID(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.Status != constants.StatusPending {
		t.Errorf("status = %s, want Pending", stored.Status)
	}
}

func TestServiceCreateDoneDoesNotKick(t *testing.T) {
	service, _, trigger := newFollowUpService(t)

	in := dueIn(2)
	in.Status = constants.StatusDone
	if _, err := service.Create(context.Background(), *in); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if trigger.kicks != 0 {
		t.Errorf("kicks = %d, done follow-ups need no cycle", trigger.kicks)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	service, _, _ := newFollowUpService(t)

	in := dueIn(2)
	in.Contact = "   "
	if _, err := service.Create(context.Background(), *in); !apperrors.IsValidation(err) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestServiceUpdateDueDateResetsCadence(t *testing.T) {
	service, repo, _ := newFollowUpService(t)

	f, err := service.Create(context.Background(), *dueIn(2))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Simulate an earlier reminder.
	f.DueNotificationSent = true
	stamp := testNow
	f.LastNotificationAt = &stamp
	if err := repo.Save(context.Background(), f); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	newDue := testToday.AddDate(0, 0, 6)
	updated, err := service.Update(context.Background(), f.ID, UpdateInput{DueDate: &newDue})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DueNotificationSent {
		t.Error("due-date change must reset due_notification_sent")
	}
	if updated.LastNotificationAt != nil {
		t.Error("due-date change must clear last_notification_at")
	}
}

func TestServiceUpdateStatusTransition(t *testing.T) {
	service, _, trigger := newFollowUpService(t)

	f, err := service.Create(context.Background(), *dueIn(2))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done := constants.StatusDone
	updated, err := service.Update(context.Background(), f.ID, UpdateInput{Status: &done})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != constants.StatusDone || updated.CompletedAt == nil {
		t.Errorf("done transition not applied: %+v", updated)
	}

	kicksAfterDone := trigger.kicks
	snoozed := constants.StatusSnoozed
	snoozeDate := testToday.AddDate(0, 0, 4)
	updated, err = service.Update(context.Background(), f.ID, UpdateInput{
		Status:       &snoozed,
		SnoozedUntil: &snoozeDate,
	})
	if err != nil {
		t.Fatalf("snooze failed: %v", err)
	}
	if updated.SnoozedUntil == nil {
		t.Error("snoozed_until must be set")
	}
	if trigger.kicks != kicksAfterDone+1 {
		t.Errorf("snoozing must kick the trigger, kicks = %d", trigger.kicks)
	}
}

func TestServiceUpdateRejectsSnoozeOfOverdue(t *testing.T) {
	service, _, _ := newFollowUpService(t)

	f, err := service.Create(context.Background(), *dueIn(-1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	snoozed := constants.StatusSnoozed
	tomorrow := testToday.AddDate(0, 0, 1)
	_, err = service.Update(context.Background(), f.ID, UpdateInput{
		Status:       &snoozed,
		SnoozedUntil: &tomorrow,
	})
	if !errors.Is(err, apperrors.ErrCannotSnoozeOverdue) {
		t.Errorf("expected ErrCannotSnoozeOverdue, got %v", err)
	}
}

func TestServiceListFilter(t *testing.T) {
	service, _, _ := newFollowUpService(t)

	if _, err := service.Create(context.Background(), *dueIn(1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	in := dueIn(2)
	in.Status = constants.StatusDone
	if _, err := service.Create(context.Background(), *in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	pending, err := service.List(context.Background(), "Pending")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("pending count = %d, want 1", len(pending))
	}

	all, err := service.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("total count = %d, want 2", len(all))
	}

	if _, err := service.List(context.Background(), "Archived"); !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus for bad filter, got %v", err)
	}
}

func TestServiceDeleteCascadesLogs(t *testing.T) {
	service, repo, _ := newFollowUpService(t)

	f, err := service.Create(context.Background(), *dueIn(1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	notifier := &fakeNotifier{}
	clock := newFakeClock()
	dispatcher := NewDispatcher(notifier, "ops@example.com", clock)
	automation := NewAutomationService(repo, dispatcher, cyclelock.NewLocalLocker(), clock, 3)
	if _, err := automation.RunCycle(context.Background()); err != nil {
		t.Fatalf("cycle failed: %v", err)
	}

	logs, _ := repo.ListLogs(context.Background(), f.ID)
	if len(logs) == 0 {
		t.Fatal("expected at least one log entry before delete")
	}

	if err := service.Delete(context.Background(), f.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := service.Get(context.Background(), f.ID); !errors.Is(err, apperrors.ErrFollowUpNotFound) {
		t.Errorf("expected ErrFollowUpNotFound after delete, got %v", err)
	}
	logs, _ = repo.ListLogs(context.Background(), f.ID)
	if len(logs) != 0 {
		t.Errorf("log entries after delete = %d, want 0", len(logs))
	}
}
