//go:build !linux
// +build !linux

package affinity

import "errors"

var errUnsupported = errors.New("thread affinity requires linux")

// OSBinder is a placeholder on non-Linux platforms.
type OSBinder struct{}

// NewBinder returns a binder that always fails; callers treat that as best-effort.
func NewBinder() *OSBinder {
	return &OSBinder{}
}

// Bind always fails on unsupported platforms.
func (OSBinder) Bind(core int) error {
	return errUnsupported
}
