// Package hrtimer wraps the high-resolution counter and the timing primitives built on it.
package hrtimer

import (
	"errors"
	"time"
)

// ErrCounterUnsupported is returned when the host exposes no usable high-resolution counter.
var ErrCounterUnsupported = errors.New("high-resolution counter not supported")

// NanosPerSecond is the tick rate of counters that report nanoseconds.
const NanosPerSecond = int64(time.Second)

// Source is a monotonic tick counter with a fixed frequency.
type Source interface {
	Now() int64
	Frequency() int64
}

// Counter is the OS-backed Source. Its frequency is calibrated once in NewSource.
type Counter struct {
	read       func() int64
	frequency  int64
	resolution time.Duration
}

// Now returns the current tick value.
func (c *Counter) Now() int64 {
	return c.read()
}

// Frequency returns ticks per second.
func (c *Counter) Frequency() int64 {
	return c.frequency
}

// Resolution is the smallest step the OS reports for the underlying clock.
func (c *Counter) Resolution() time.Duration {
	return c.resolution
}

// TicksToDuration converts a tick difference into a duration for the given frequency.
func TicksToDuration(ticks, frequency int64) time.Duration {
	if frequency == NanosPerSecond {
		return time.Duration(ticks)
	}
	return time.Duration(float64(ticks) / float64(frequency) * float64(time.Second))
}
