package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
)

// Scheduler owns the periodic automation trigger: a single ticker goroutine
// with idempotent Start/Stop and a non-blocking on-demand kick channel. There
// is one scheduler per process; Running is externally visible so restarts can
// be guarded.
type Scheduler struct {
	automation *AutomationService
	interval   time.Duration

	kick chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	running bool
}

func NewScheduler(automation *AutomationService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		automation: automation,
		interval:   interval,
		kick:       make(chan struct{}, 1),
	}
}

// Start launches the ticker loop and runs one cycle immediately. Starting a
// running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("scheduler already running, skipping start")
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()

	log.Printf("automation scheduler started (interval=%s)", s.interval)
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	// Initial cycle on startup.
	s.runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.kick:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) runOnce() {
	if _, err := s.automation.RunCycle(context.Background()); err != nil {
		if errors.Is(err, apperrors.ErrCycleInProgress) {
			return
		}
		log.Printf("automation cycle failed: %v", err)
	}
}

// Kick requests an on-demand cycle without blocking the caller; concurrent
// kicks collapse into one pending run.
func (s *Scheduler) Kick() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Stop halts the ticker loop and waits for an in-flight cycle to finish.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop := s.stop
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()

	log.Println("automation scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
