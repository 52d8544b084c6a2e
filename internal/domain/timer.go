package domain

import "time"

// TimerStatus represents the lifecycle state of a round timer
type TimerStatus string

const (
	TimerNotStarted TimerStatus = "not_started"
	TimerRunning    TimerStatus = "running"
	TimerPaused     TimerStatus = "paused"
	TimerExpired    TimerStatus = "expired" // Terminal
)

// Timer is a pausable elapsed-time tracker for one game round. Expiry is
// detected lazily: Remaining flips the status to expired when it first
// observes zero time left. The Timer is not safe for concurrent use; the
// owning session serializes access.
type Timer struct {
	duration    time.Duration
	status      TimerStatus
	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	now         func() time.Time
}

// NewTimer creates a timer for the given round duration
func NewTimer(duration time.Duration) *Timer {
	return NewTimerWithClock(duration, time.Now)
}

// NewTimerWithClock creates a timer with an injectable clock for tests
func NewTimerWithClock(duration time.Duration, now func() time.Time) *Timer {
	return &Timer{
		duration: duration,
		status:   TimerNotStarted,
		now:      now,
	}
}

// Start begins the countdown. Legal only before the first start.
func (t *Timer) Start() bool {
	if t.status != TimerNotStarted {
		return false
	}
	t.startedAt = t.now()
	t.status = TimerRunning
	return true
}

// Pause freezes the countdown. Legal only while running.
func (t *Timer) Pause() bool {
	if t.status != TimerRunning {
		return false
	}
	t.pausedAt = t.now()
	t.status = TimerPaused
	return true
}

// Resume continues the countdown, accumulating the pause interval that
// just finished. Legal only while paused.
func (t *Timer) Resume() bool {
	if t.status != TimerPaused {
		return false
	}
	t.pausedTotal += t.now().Sub(t.pausedAt)
	t.pausedAt = time.Time{}
	t.status = TimerRunning
	return true
}

// Elapsed returns running time since start, excluding time spent paused
func (t *Timer) Elapsed() time.Duration {
	if t.startedAt.IsZero() {
		return 0
	}
	if t.status == TimerPaused {
		return t.pausedAt.Sub(t.startedAt) - t.pausedTotal
	}
	return t.now().Sub(t.startedAt) - t.pausedTotal
}

// Remaining returns the time left on the clock. Observing zero remaining
// transitions the timer to expired.
func (t *Timer) Remaining() time.Duration {
	if t.status == TimerExpired {
		return 0
	}
	remaining := t.duration - t.Elapsed()
	if remaining <= 0 && t.status != TimerNotStarted {
		t.status = TimerExpired
		return 0
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the timer has run out
func (t *Timer) Expired() bool {
	return t.Remaining() <= 0 && t.status == TimerExpired
}

// Status returns the current timer status, refreshing lazy expiry first
func (t *Timer) Status() TimerStatus {
	t.Remaining()
	return t.status
}

// Duration returns the configured round duration
func (t *Timer) Duration() time.Duration {
	return t.duration
}
