//go:build linux
// +build linux

package sched

import (
	"errors"
	"fmt"

	"github.com/cilium/ebpf"
	"github.com/cilium/ebpf/link"

	"github.com/srodi/corejitter/pkg/types"
)

// Collector counts context switches per CPU with a program attached to sched/sched_switch.
type Collector struct {
	counts   *ebpf.Map
	prog     *ebpf.Program
	tp       link.Link
	cores    int
	baseline []uint64
}

// NewCollector loads the switch counter and attaches it. cores bounds the reported rows.
func NewCollector(cores int) (*Collector, error) {
	counts, err := ebpf.NewMap(&ebpf.MapSpec{
		Name:       "core_switches",
		Type:       ebpf.PerCPUArray,
		KeySize:    4,
		ValueSize:  8,
		MaxEntries: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("creating switch map: %w", err)
	}

	prog, err := ebpf.NewProgram(&ebpf.ProgramSpec{
		Name:         "count_switches",
		Type:         ebpf.TracePoint,
		License:      "GPL",
		Instructions: switchCounterInsns(counts.FD()),
	})
	if err != nil {
		counts.Close()
		return nil, fmt.Errorf("loading switch counter: %w", err)
	}

	tp, err := link.Tracepoint("sched", "sched_switch", prog, nil)
	if err != nil {
		prog.Close()
		counts.Close()
		return nil, fmt.Errorf("attaching tracepoint: %w", err)
	}

	c := &Collector{counts: counts, prog: prog, tp: tp, cores: cores}
	if err := c.Reset(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close detaches the tracepoint and releases the program and map.
func (c *Collector) Close() error {
	var err error
	if c.tp != nil {
		err = errors.Join(err, c.tp.Close())
	}
	if c.prog != nil {
		err = errors.Join(err, c.prog.Close())
	}
	return errors.Join(err, c.counts.Close())
}

// Snapshot returns switches per core since the previous Reset.
func (c *Collector) Snapshot() ([]types.SwitchStat, error) {
	current, err := c.read()
	if err != nil {
		return nil, err
	}
	return windowCounts(current, c.baseline, c.cores), nil
}

// Reset starts a new window at the current counter values.
func (c *Collector) Reset() error {
	current, err := c.read()
	if err != nil {
		return err
	}
	c.baseline = current
	return nil
}

func (c *Collector) read() ([]uint64, error) {
	var perCPU []uint64
	if err := c.counts.Lookup(uint32(0), &perCPU); err != nil {
		return nil, fmt.Errorf("reading switch counters: %w", err)
	}
	return perCPU, nil
}
