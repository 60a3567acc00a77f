// Package report formats per-core deltas and writes them to the console and the log file.
package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/srodi/corejitter/pkg/hrtimer"
	"github.com/srodi/corejitter/pkg/types"
)

// Reader exposes the current per-core samples.
type Reader interface {
	Snapshot() []types.CoreSample
}

// SwitchCounter reports context switches per core since its last Reset.
type SwitchCounter interface {
	Snapshot() ([]types.SwitchStat, error)
	Reset() error
}

// Reporter prints one report per cycle. The console write, the log append and the run
// counter update happen as one unit under mu, so concurrent Cycle calls never interleave
// or reuse a run number.
type Reporter struct {
	table   Reader
	console io.Writer
	log     Sink

	// Switches, when set, adds a context switch column to every core line.
	Switches SwitchCounter

	mu  sync.Mutex
	run int
}

// NewReporter returns a Reporter whose first report is "Run 1".
func NewReporter(table Reader, console io.Writer, sink Sink) *Reporter {
	return &Reporter{table: table, console: console, log: sink, run: 1}
}

// nextRun returns the number the next report will carry.
func (r *Reporter) nextRun() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run
}

// Cycle builds and writes one report. A failed write is returned without advancing the
// run counter.
func (r *Reporter) Cycle() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var switches []types.SwitchStat
	if r.Switches != nil {
		stats, err := r.Switches.Snapshot()
		if err != nil {
			log.Printf("context switch snapshot failed: %v", err)
		} else {
			switches = stats
		}
	}

	text := Format(r.run, BuildRows(r.table.Snapshot(), switches), r.Switches != nil)

	if _, err := io.WriteString(r.console, text+"\n"); err != nil {
		return fmt.Errorf("writing run %d to console: %w", r.run, err)
	}
	if err := r.log.Append(text); err != nil {
		return fmt.Errorf("writing run %d to log: %w", r.run, err)
	}

	if r.Switches != nil {
		if err := r.Switches.Reset(); err != nil {
			log.Printf("context switch reset failed: %v", err)
		}
	}
	r.run++
	return nil
}

// Loop runs Cycle every interval until ctx is done, runs reports have been written
// (runs <= 0 means no limit), or a cycle fails. Cancellation is not an error.
func (r *Reporter) Loop(ctx context.Context, sleeper *hrtimer.Sleeper, interval time.Duration, runs int) error {
	for done := 0; runs <= 0 || done < runs; done++ {
		if ctx.Err() != nil {
			return nil
		}
		if err := r.Cycle(); err != nil {
			return err
		}
		if runs > 0 && done+1 == runs {
			break
		}
		sleeper.Sleep(interval)
	}
	return nil
}
