// Package timer provides a restartable polling timer used by plugins to
// self-schedule delayed state transitions.
package timer

import "time"

// Timer counts down a timeout and reports expiry on demand.
// It is a pure value owned by the plugin that created it; nothing fires
// asynchronously. A Timer is not safe for concurrent use, which is fine
// because hook dispatch is strictly sequential.
type Timer struct {
	timeout time.Duration
	started time.Time
	running bool

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a timer with the given timeout. The timer does not start
// counting until Start is called.
func New(timeout time.Duration) *Timer {
	return &Timer{
		timeout: timeout,
		now:     time.Now,
	}
}

// Start begins (or restarts) the countdown from now.
func (t *Timer) Start() {
	t.started = t.now()
	t.running = true
}

// Stop halts the countdown. IsTimeout returns false until the next Start.
func (t *Timer) Stop() {
	t.running = false
}

// SetTimeout replaces the timeout duration. The change takes effect on the
// current countdown as well, so callers that adjust a timeout from
// configuration typically call SetTimeout then Start.
func (t *Timer) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// Timeout returns the configured timeout duration.
func (t *Timer) Timeout() time.Duration {
	return t.timeout
}

// Elapsed returns the time since the last Start, or zero if the timer is
// not running.
func (t *Timer) Elapsed() time.Duration {
	if !t.running {
		return 0
	}
	return t.now().Sub(t.started)
}

// Remaining returns the time left before expiry. It never goes negative.
func (t *Timer) Remaining() time.Duration {
	if !t.running {
		return t.timeout
	}
	left := t.timeout - t.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// IsTimeout reports whether the countdown has expired. A timer that was
// never started reports false. A zero timeout expires on the first poll
// after Start.
func (t *Timer) IsTimeout() bool {
	if !t.running {
		return false
	}
	return t.Elapsed() >= t.timeout
}
