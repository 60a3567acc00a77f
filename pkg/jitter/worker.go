package jitter

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/srodi/corejitter/pkg/affinity"
	"github.com/srodi/corejitter/pkg/hrtimer"
)

// Worker measures delta time on one core and publishes it to its slot.
type Worker struct {
	Slot     Slot
	Source   hrtimer.Source
	Binder   affinity.Binder
	Sleeper  *hrtimer.Sleeper
	Interval time.Duration
	Warmup   int
	// Warn is called when pinning fails; the worker keeps measuring unpinned.
	Warn func(format string, args ...any)
}

// Run pins the goroutine's thread, warms up, then samples once per Interval until ctx is done.
// The thread stays locked after Run returns so that the runtime retires it rather than
// handing a pinned thread to other goroutines.
func (w *Worker) Run(ctx context.Context) {
	runtime.LockOSThread()

	if err := w.Binder.Bind(w.Slot.Core()); err != nil && w.Warn != nil {
		w.Warn("core %d: %v; measuring unpinned", w.Slot.Core(), err)
	}

	timer := hrtimer.NewDeltaTimer(w.Source)
	w.Slot.StoreFrequency(timer.Frequency())

	for i := 0; i < w.Warmup; i++ {
		timer.Sample()
	}

	for ctx.Err() == nil {
		w.Slot.StoreDelta(timer.Sample())
		w.Sleeper.Sleep(w.Interval)
	}
}

// Group tracks running workers.
type Group struct {
	wg      sync.WaitGroup
	started int
}

// StartWorkers launches one worker per table slot, each on its own goroutine.
func StartWorkers(ctx context.Context, table *Table, newWorker func(Slot) *Worker) *Group {
	g := &Group{}
	for core := 0; core < table.Len(); core++ {
		w := newWorker(table.Slot(core))
		g.wg.Add(1)
		g.started++
		go func() {
			defer g.wg.Done()
			w.Run(ctx)
		}()
	}
	return g
}

// Started returns how many workers were launched.
func (g *Group) Started() int {
	return g.started
}

// Wait blocks until every worker has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}
