package cyclelock

import (
	"context"
	"errors"
)

// Locker serializes automation-cycle invocations. Overlapping cycles (a
// scheduler tick racing an on-demand trigger, or two replicas sharing one
// store) are not safe against each other, so a cycle must hold the lock for
// its whole run.
type Locker interface {
	Acquire(ctx context.Context) error

	Release(ctx context.Context) error
}

var ErrCycleLocked = errors.New("automation cycle lock is held")
