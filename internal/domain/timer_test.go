package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for timer tests
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestTimerLifecycle(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerWithClock(8*time.Minute, clock.now)

	assert.Equal(t, TimerNotStarted, timer.Status())
	assert.Equal(t, time.Duration(0), timer.Elapsed())

	require.True(t, timer.Start())
	assert.Equal(t, TimerRunning, timer.Status())
	assert.False(t, timer.Start(), "second start must be rejected")

	clock.advance(2 * time.Minute)
	assert.Equal(t, 2*time.Minute, timer.Elapsed())
	assert.Equal(t, 6*time.Minute, timer.Remaining())
}

func TestTimerPauseExcludedFromElapsed(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerWithClock(8*time.Minute, clock.now)
	require.True(t, timer.Start())

	clock.advance(3 * time.Minute)
	require.True(t, timer.Pause())
	assert.Equal(t, TimerPaused, timer.Status())

	// Time spent paused must not count against the round
	clock.advance(10 * time.Minute)
	assert.Equal(t, 3*time.Minute, timer.Elapsed())
	assert.Equal(t, 5*time.Minute, timer.Remaining())

	require.True(t, timer.Resume())
	clock.advance(1 * time.Minute)
	assert.Equal(t, 4*time.Minute, timer.Elapsed())
	assert.Equal(t, 4*time.Minute, timer.Remaining())
}

func TestTimerRepeatedPauses(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerWithClock(10*time.Minute, clock.now)
	require.True(t, timer.Start())

	for i := 0; i < 3; i++ {
		clock.advance(time.Minute)
		require.True(t, timer.Pause())
		clock.advance(30 * time.Second)
		require.True(t, timer.Resume())
	}

	assert.Equal(t, 3*time.Minute, timer.Elapsed())
}

func TestTimerIllegalTransitions(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerWithClock(time.Minute, clock.now)

	assert.False(t, timer.Pause(), "pause before start")
	assert.False(t, timer.Resume(), "resume before start")

	require.True(t, timer.Start())
	assert.False(t, timer.Resume(), "resume while running")

	require.True(t, timer.Pause())
	assert.False(t, timer.Pause(), "double pause")
}

func TestTimerLazyExpiry(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerWithClock(time.Minute, clock.now)
	require.True(t, timer.Start())

	clock.advance(59 * time.Second)
	assert.False(t, timer.Expired())

	clock.advance(2 * time.Second)
	assert.True(t, timer.Expired())
	assert.Equal(t, TimerExpired, timer.Status())
	assert.Equal(t, time.Duration(0), timer.Remaining())

	// Expiry is terminal
	assert.False(t, timer.Pause())
	assert.False(t, timer.Resume())
}
