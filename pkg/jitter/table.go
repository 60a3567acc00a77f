// Package jitter runs one pinned measuring worker per core and reports their deltas.
package jitter

import (
	"math"
	"sync/atomic"

	"github.com/srodi/corejitter/pkg/types"
)

// slot holds the latest measurements of one core. Each slot has exactly one writer
// (its worker) and is read by the reporter with atomic loads, so a reader sees either
// the previous or the new value but never a mix of both.
type slot struct {
	delta     atomic.Uint64 // math.Float64bits of seconds
	frequency atomic.Int64
	_         [48]byte // keep neighbouring cores on separate cache lines
}

// Table is the shared per-core delta and frequency table. Its length is fixed at creation.
type Table struct {
	slots []slot
}

// NewTable allocates a table with one slot per core.
func NewTable(cores int) *Table {
	return &Table{slots: make([]slot, cores)}
}

// Len returns the number of cores in the table.
func (t *Table) Len() int {
	return len(t.slots)
}

// Slot returns the write handle for core. It panics if core is out of range.
func (t *Table) Slot(core int) Slot {
	return Slot{core: core, s: &t.slots[core]}
}

// Snapshot reads every slot. Slots are read independently; no cross-core ordering is implied.
func (t *Table) Snapshot() []types.CoreSample {
	samples := make([]types.CoreSample, len(t.slots))
	for i := range t.slots {
		samples[i] = types.CoreSample{
			Core:      i,
			Delta:     math.Float64frombits(t.slots[i].delta.Load()),
			Frequency: t.slots[i].frequency.Load(),
		}
	}
	return samples
}

// Slot is a write-only handle to a single core's entry in a Table.
type Slot struct {
	core int
	s    *slot
}

// Core returns the index this handle writes to.
func (s Slot) Core() int {
	return s.core
}

// StoreDelta publishes the latest delta in seconds.
func (s Slot) StoreDelta(seconds float64) {
	s.s.delta.Store(math.Float64bits(seconds))
}

// StoreFrequency publishes the counter frequency this core measures with.
func (s Slot) StoreFrequency(ticksPerSecond int64) {
	s.s.frequency.Store(ticksPerSecond)
}
