package utils

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned when a WaitFor predicate never became true.
var ErrWaitTimeout = errors.New("timed out waiting for condition")

const (
	// DefaultWaitTimeout bounds how long WaitFor polls before giving up.
	DefaultWaitTimeout = 2000 * time.Millisecond
	// DefaultWaitInterval is the polling cadence.
	DefaultWaitInterval = 20 * time.Millisecond
)

// WaitFor polls pred until it returns true, the timeout elapses, or the
// context is cancelled. Used to wait for host-side state to settle (e.g. a
// newly created file appearing in a view index) when the host offers no
// completion signal. Pass zero timeout/interval for the defaults.
func WaitFor(ctx context.Context, pred func() bool, timeout, interval time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if interval <= 0 {
		interval = DefaultWaitInterval
	}

	if pred() {
		return nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return ErrWaitTimeout
		case <-ticker.C:
			if pred() {
				return nil
			}
		}
	}
}
