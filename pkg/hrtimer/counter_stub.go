//go:build !linux
// +build !linux

package hrtimer

import (
	"fmt"
	"runtime"
)

// NewSource fails because the raw monotonic counter is only wired up on Linux.
func NewSource() (*Counter, error) {
	return nil, fmt.Errorf("%w on %s", ErrCounterUnsupported, runtime.GOOS)
}

func osYield() {
	runtime.Gosched()
}
