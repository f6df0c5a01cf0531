package core

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// Locker serializes every mutation of the shared tables.
type Locker struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

func NewLocker(timeout time.Duration) *Locker {
	return &Locker{
		sem:     semaphore.NewWeighted(1),
		timeout: timeout,
	}
}

// WithLock runs fn while holding the lock. It returns ErrBusy without calling fn
// if the lock is not acquired within the timeout.
func (l *Locker) WithLock(ctx context.Context, fn func() error) error {
	acqCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.sem.Acquire(acqCtx, 1); err != nil {
		return ErrBusy
	}
	defer l.sem.Release(1)

	return fn()
}
