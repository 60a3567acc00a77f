package jitter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/srodi/corejitter/pkg/affinity"
	"github.com/srodi/corejitter/pkg/hrtimer"
	"github.com/srodi/corejitter/pkg/report"
	"github.com/srodi/corejitter/pkg/types"
)

// Options wires a measurement session. NewSource, Console and Log are required; other
// zero values pick the defaults noted per field.
type Options struct {
	Cores    int
	Interval time.Duration // types.DefaultInterval
	Warmup   int
	Runs     int // 0 reports forever

	// NewSource calibrates the counter; a failure aborts before any worker starts.
	NewSource func() (hrtimer.Source, error)
	Binder    affinity.Binder  // affinity.NewBinder()
	Sleeper   *hrtimer.Sleeper // hrtimer.SourceSleeper over the calibrated source
	Console   io.Writer
	Log       report.Sink
	Switches  report.SwitchCounter
	Warn      func(format string, args ...any)

	// OnStart is called once the workers are running, before the first report.
	OnStart func(workers int)
}

var (
	errNoCores        = errors.New("core count must be at least 1")
	errMissingOptions = errors.New("incomplete options")
)

// Run calibrates the counter, starts one worker per core and reports until ctx is done,
// the run limit is reached or a report cannot be written. Workers are stopped and
// waited for before Run returns.
func Run(ctx context.Context, opts Options) error {
	if opts.Cores < 1 {
		return fmt.Errorf("%w, got %d", errNoCores, opts.Cores)
	}
	switch {
	case opts.NewSource == nil:
		return fmt.Errorf("%w: no counter source", errMissingOptions)
	case opts.Console == nil:
		return fmt.Errorf("%w: no console writer", errMissingOptions)
	case opts.Log == nil:
		return fmt.Errorf("%w: no log sink", errMissingOptions)
	}
	var binder affinity.Binder = affinity.NewBinder()
	if opts.Binder != nil {
		binder = opts.Binder
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = types.DefaultInterval
	}

	src, err := opts.NewSource()
	if err != nil {
		return fmt.Errorf("calibrating counter: %w", err)
	}
	sleeper := opts.Sleeper
	if sleeper == nil {
		sleeper = hrtimer.SourceSleeper(src)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	table := NewTable(opts.Cores)
	group := StartWorkers(ctx, table, func(slot Slot) *Worker {
		return &Worker{
			Slot:     slot,
			Source:   src,
			Binder:   binder,
			Sleeper:  sleeper,
			Interval: interval,
			Warmup:   opts.Warmup,
			Warn:     opts.Warn,
		}
	})
	if opts.OnStart != nil {
		opts.OnStart(group.Started())
	}

	reporter := report.NewReporter(table, opts.Console, opts.Log)
	reporter.Switches = opts.Switches
	err = reporter.Loop(ctx, sleeper, interval, opts.Runs)

	cancel()
	group.Wait()
	return err
}
