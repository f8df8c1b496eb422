package cyclelock

import (
	"context"
	"sync/atomic"
)

// LocalLocker is the in-process lock used when no Redis address is configured.
// It only protects a single instance against its own overlapping triggers.
type LocalLocker struct {
	held atomic.Bool
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

func (l *LocalLocker) Acquire(ctx context.Context) error {
	if !l.held.CompareAndSwap(false, true) {
		return ErrCycleLocked
	}
	return nil
}

func (l *LocalLocker) Release(ctx context.Context) error {
	l.held.Store(false)
	return nil
}
