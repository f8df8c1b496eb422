package services

import (
	"testing"
	"time"

	"github.com/Anirban2958/clapgrow/internal/cyclelock"
	repository "github.com/Anirban2958/clapgrow/internal/repositories"
)

func newScheduler(t *testing.T) (*Scheduler, *repository.FollowUpRepository, *fakeNotifier, *fakeClock) {
	t.Helper()

	repo := repository.NewFollowUpRepository(setupTestDB(t))
	notifier := &fakeNotifier{}
	clock := newFakeClock()
	dispatcher := NewDispatcher(notifier, "ops@example.com", clock)
	automation := NewAutomationService(repo, dispatcher, cyclelock.NewLocalLocker(), clock, 3)
	scheduler := NewScheduler(automation, time.Hour)

	return scheduler, repo, notifier, clock
}

func waitForSends(t *testing.T, notifier *fakeNotifier, want int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if notifier.count() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d sends, got %d", want, notifier.count())
}

func TestSchedulerRunsInitialCycle(t *testing.T) {
	scheduler, repo, notifier, _ := newScheduler(t)
	seedPending(t, repo, 1)

	scheduler.Start()
	defer scheduler.Stop()

	waitForSends(t, notifier, 1)
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	scheduler, _, _, _ := newScheduler(t)

	scheduler.Start()
	scheduler.Start()
	if !scheduler.Running() {
		t.Error("scheduler must report running after Start")
	}

	scheduler.Stop()
	scheduler.Stop()
	if scheduler.Running() {
		t.Error("scheduler must report stopped after Stop")
	}
}

func TestSchedulerKickRunsCycle(t *testing.T) {
	scheduler, repo, notifier, clock := newScheduler(t)
	seedPending(t, repo, 1)

	scheduler.Start()
	defer scheduler.Stop()
	waitForSends(t, notifier, 1)

	// Same-day kicks stay idempotent; a new day makes the item eligible again.
	clock.advanceDays(1)
	scheduler.Kick()
	waitForSends(t, notifier, 2)
}

func TestSchedulerRestart(t *testing.T) {
	scheduler, repo, notifier, clock := newScheduler(t)
	seedPending(t, repo, 1)

	scheduler.Start()
	waitForSends(t, notifier, 1)
	scheduler.Stop()

	clock.advanceDays(1)
	scheduler.Start()
	defer scheduler.Stop()
	waitForSends(t, notifier, 2)
}
