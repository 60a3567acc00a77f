//go:build linux
// +build linux

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// schedSetaffinity allows tests to observe the mask without touching the scheduler.
var schedSetaffinity = unix.SchedSetaffinity

// OSBinder pins threads with sched_setaffinity(2).
type OSBinder struct{}

// NewBinder returns the platform binder.
func NewBinder() *OSBinder {
	return &OSBinder{}
}

// Bind pins the calling thread (tid 0) to core.
func (OSBinder) Bind(core int) error {
	if core < 0 || core >= 1024 {
		return fmt.Errorf("core %d outside cpu set range", core)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := schedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("pinning thread to core %d: %w", core, err)
	}
	return nil
}
