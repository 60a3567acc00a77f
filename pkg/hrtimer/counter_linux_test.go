//go:build linux

package hrtimer

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestNewSourceCalibratesRawClock(t *testing.T) {
	src, err := NewSource()
	if err != nil {
		t.Fatalf("expected raw monotonic clock on linux, got %v", err)
	}
	if src.Frequency() != NanosPerSecond {
		t.Fatalf("unexpected frequency %d", src.Frequency())
	}
	if src.Resolution() <= 0 || src.Resolution() > time.Millisecond {
		t.Fatalf("implausible resolution %v", src.Resolution())
	}

	first := src.Now()
	time.Sleep(time.Millisecond)
	if second := src.Now(); second <= first {
		t.Fatalf("counter did not advance: %d then %d", first, second)
	}
}

func TestNewSourceReportsUnsupportedClock(t *testing.T) {
	t.Cleanup(func() {
		clockGetres = unix.ClockGetres
		clockGettime = unix.ClockGettime
	})

	clockGetres = func(clockid int32, res *unix.Timespec) error {
		return unix.EINVAL
	}
	if _, err := NewSource(); !errors.Is(err, ErrCounterUnsupported) {
		t.Fatalf("expected ErrCounterUnsupported, got %v", err)
	}

	clockGetres = func(clockid int32, res *unix.Timespec) error {
		*res = unix.Timespec{}
		return nil
	}
	if _, err := NewSource(); !errors.Is(err, ErrCounterUnsupported) {
		t.Fatalf("zero resolution should be unsupported, got %v", err)
	}

	clockGetres = unix.ClockGetres
	clockGettime = func(clockid int32, ts *unix.Timespec) error {
		return unix.ENOSYS
	}
	if _, err := NewSource(); !errors.Is(err, ErrCounterUnsupported) {
		t.Fatalf("failing clock_gettime should be unsupported, got %v", err)
	}
}

func TestCounterKeepsLastTickWhenReadFails(t *testing.T) {
	t.Cleanup(func() { clockGettime = unix.ClockGettime })

	src, err := NewSource()
	if err != nil {
		t.Fatalf("expected raw monotonic clock on linux, got %v", err)
	}
	before := src.Now()

	clockGettime = func(clockid int32, ts *unix.Timespec) error {
		return unix.EFAULT
	}
	if got := src.Now(); got != before {
		t.Fatalf("failed read should repeat last tick %d, got %d", before, got)
	}

	timer := NewDeltaTimer(src)
	if delta := timer.Sample(); delta != 0 {
		t.Fatalf("failed reads should yield a zero delta, got %v", delta)
	}

	clockGettime = unix.ClockGettime
	if got := src.Now(); got < before {
		t.Fatalf("counter went backwards after recovery: %d < %d", got, before)
	}
}

func TestOSYieldReturns(t *testing.T) {
	done := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		for i := 0; i < 100; i++ {
			osYield()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("sched_yield did not return")
	}
}
