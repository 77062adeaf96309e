// Package timer provides single-slot timers and a completion latch for code
// that runs on one event loop.
package timer

import "time"

// Scheduler runs fn after d. Callbacks must be delivered on the same event
// loop that calls into the scheduler. The returned cancel func is safe to call
// more than once and after the callback has run.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Timer holds at most one pending callback. Scheduling a new callback
// replaces the pending one.
type Timer struct {
	sched  Scheduler
	cancel func()
	gen    uint64
}

// New creates a Timer backed by sched.
func New(sched Scheduler) *Timer {
	return &Timer{sched: sched}
}

// Reset cancels any pending callback and schedules fn after d.
func (t *Timer) Reset(d time.Duration, fn func()) {
	t.Stop()
	t.gen++
	gen := t.gen
	t.cancel = t.sched.AfterFunc(d, func() {
		// A scheduler that fails to honour cancel must not run a replaced callback.
		if gen != t.gen {
			return
		}
		t.cancel = nil
		fn()
	})
}

// Stop cancels the pending callback, if any.
func (t *Timer) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

// Pending reports whether a callback is scheduled and has not yet run.
func (t *Timer) Pending() bool {
	return t.cancel != nil
}
