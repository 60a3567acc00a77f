//go:build linux
// +build linux

package hrtimer

import (
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// counterClock is immune to NTP slewing, which is what a jitter measurement wants.
const counterClock = unix.CLOCK_MONOTONIC_RAW

// clockGetres and clockGettime allow tests to simulate a host without the raw clock.
var (
	clockGetres  = unix.ClockGetres
	clockGettime = unix.ClockGettime
)

// NewSource calibrates the raw monotonic clock and returns a Counter reading it.
func NewSource() (*Counter, error) {
	var res unix.Timespec
	if err := clockGetres(counterClock, &res); err != nil {
		return nil, fmt.Errorf("%w: clock_getres: %v", ErrCounterUnsupported, err)
	}
	resolution := time.Duration(unix.TimespecToNsec(res))
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: clock reports resolution %v", ErrCounterUnsupported, resolution)
	}

	var probe unix.Timespec
	if err := clockGettime(counterClock, &probe); err != nil {
		return nil, fmt.Errorf("%w: clock_gettime: %v", ErrCounterUnsupported, err)
	}

	var last atomic.Int64
	last.Store(unix.TimespecToNsec(probe))
	return &Counter{
		read:       func() int64 { return readRawClock(&last) },
		frequency:  NanosPerSecond,
		resolution: resolution,
	}, nil
}

// readRawClock returns the latest successful reading if the clock read fails, so a
// transient failure shows up as a zero delta instead of a negative one.
func readRawClock(last *atomic.Int64) int64 {
	var ts unix.Timespec
	if err := clockGettime(counterClock, &ts); err != nil {
		return last.Load()
	}
	now := unix.TimespecToNsec(ts)
	last.Store(now)
	return now
}

// osYield gives up the remainder of the calling thread's quantum. sched_yield(2) acts on
// the OS thread, which matters for workers locked to their thread.
func osYield() {
	_, _, _ = unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0)
}
