//go:build !linux
// +build !linux

package sched

import (
	"errors"

	"github.com/srodi/corejitter/pkg/types"
)

var errUnsupported = errors.New("context switch collector requires linux")

// Collector is a placeholder on non-Linux platforms.
type Collector struct{}

// NewCollector returns an error because eBPF is only supported on Linux.
func NewCollector(cores int) (*Collector, error) {
	return nil, errUnsupported
}

// Snapshot always fails on unsupported platforms.
func (c *Collector) Snapshot() ([]types.SwitchStat, error) {
	return nil, errUnsupported
}

// Reset does nothing on unsupported platforms.
func (c *Collector) Reset() error {
	return nil
}

// Close is a no-op stub.
func (c *Collector) Close() error {
	return nil
}
