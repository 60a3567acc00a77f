// Package hrtimertest provides a deterministic clock for tests of timing code.
package hrtimertest

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/srodi/corejitter/pkg/hrtimer"
)

// Clock is a fake counter source that only moves when told to. It is safe for
// concurrent use.
type Clock struct {
	ticks     atomic.Int64
	frequency int64

	// PauseOvershoot is added to every coarse sleep, mimicking a scheduler that wakes late.
	PauseOvershoot time.Duration
	// YieldCost is how far a single yield advances the clock.
	YieldCost time.Duration

	pauses atomic.Int64
	yields atomic.Int64
}

// NewClock returns a Clock ticking at frequency ticks per second, starting at zero.
func NewClock(frequency int64) *Clock {
	return &Clock{frequency: frequency, YieldCost: 10 * time.Microsecond}
}

// Now implements hrtimer.Source.
func (c *Clock) Now() int64 {
	return c.ticks.Load()
}

// Frequency implements hrtimer.Source.
func (c *Clock) Frequency() int64 {
	return c.frequency
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.ticks.Add(c.toTicks(d))
}

// AdvanceTicks moves the clock forward by n raw ticks.
func (c *Clock) AdvanceTicks(n int64) {
	c.ticks.Add(n)
}

// Pauses reports how many coarse sleeps have been taken.
func (c *Clock) Pauses() int64 { return c.pauses.Load() }

// Yields reports how many yields have been taken.
func (c *Clock) Yields() int64 { return c.yields.Load() }

// Sleeper returns an hrtimer.Sleeper whose every primitive advances this clock
// instead of blocking. Goroutines are still rescheduled on each call so that
// fake-time loops do not starve the rest of a test.
func (c *Clock) Sleeper() *hrtimer.Sleeper {
	return &hrtimer.Sleeper{
		Elapsed: func() time.Duration {
			return hrtimer.TicksToDuration(c.Now(), c.frequency)
		},
		Pause: func(d time.Duration) {
			c.pauses.Add(1)
			c.Advance(d + c.PauseOvershoot)
			runtime.Gosched()
		},
		Yield: func() {
			c.yields.Add(1)
			c.Advance(c.YieldCost)
			runtime.Gosched()
		},
		Granularity:   hrtimer.DefaultGranularity,
		SpinThreshold: hrtimer.DefaultSpinThreshold,
	}
}

func (c *Clock) toTicks(d time.Duration) int64 {
	if c.frequency == hrtimer.NanosPerSecond {
		return int64(d)
	}
	return int64(d.Seconds() * float64(c.frequency))
}
