//go:build linux

package affinity

import (
	"errors"
	"runtime"
	"testing"

	"golang.org/x/sys/unix"
)

func TestBindBuildsSingleCoreMask(t *testing.T) {
	t.Cleanup(func() { schedSetaffinity = unix.SchedSetaffinity })

	var seen unix.CPUSet
	calls := 0
	schedSetaffinity = func(pid int, set *unix.CPUSet) error {
		calls++
		if pid != 0 {
			t.Fatalf("expected calling thread (0), got %d", pid)
		}
		seen = *set
		return nil
	}

	if err := NewBinder().Bind(5); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one syscall, got %d", calls)
	}
	if seen.Count() != 1 || !seen.IsSet(5) {
		t.Fatalf("expected mask with only core 5, got count=%d", seen.Count())
	}
}

func TestBindRejectsInvalidCores(t *testing.T) {
	t.Cleanup(func() { schedSetaffinity = unix.SchedSetaffinity })
	schedSetaffinity = func(pid int, set *unix.CPUSet) error {
		t.Fatalf("syscall should not be reached")
		return nil
	}

	for _, core := range []int{-1, 1024} {
		if err := NewBinder().Bind(core); err == nil {
			t.Fatalf("expected error for core %d", core)
		}
	}
}

func TestBindWrapsSyscallError(t *testing.T) {
	t.Cleanup(func() { schedSetaffinity = unix.SchedSetaffinity })
	schedSetaffinity = func(pid int, set *unix.CPUSet) error { return unix.EINVAL }

	if err := NewBinder().Bind(3); !errors.Is(err, unix.EINVAL) {
		t.Fatalf("expected wrapped EINVAL, got %v", err)
	}
}

func TestBindPinsCallingThread(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		// The thread is left locked so the runtime discards it instead of reusing a pinned thread.
		runtime.LockOSThread()

		var current unix.CPUSet
		if err := unix.SchedGetaffinity(0, &current); err != nil {
			done <- err
			return
		}
		core := -1
		for i := 0; i < 1024; i++ {
			if current.IsSet(i) {
				core = i
				break
			}
		}
		if core < 0 {
			done <- errors.New("empty affinity mask")
			return
		}
		if err := NewBinder().Bind(core); err != nil {
			done <- err
			return
		}
		var pinned unix.CPUSet
		if err := unix.SchedGetaffinity(0, &pinned); err != nil {
			done <- err
			return
		}
		if pinned.Count() != 1 || !pinned.IsSet(core) {
			done <- errors.New("thread not pinned to requested core")
			return
		}
		done <- nil
	}()

	if err := <-done; err != nil {
		t.Fatalf("pinning calling thread: %v", err)
	}
}
