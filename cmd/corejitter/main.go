//go:build linux

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/srodi/corejitter/pkg/affinity"
	"github.com/srodi/corejitter/pkg/collector/sched"
	"github.com/srodi/corejitter/pkg/config"
	"github.com/srodi/corejitter/pkg/hrtimer"
	"github.com/srodi/corejitter/pkg/jitter"
	"github.com/srodi/corejitter/pkg/report"
	"github.com/srodi/corejitter/pkg/ui"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("%v", err)
	}
	cfg, err := config.Parse(os.Args[1:], os.LookupEnv, runtime.NumCPU(), os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("invalid arguments: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("corejitter: %v", err)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var switches report.SwitchCounter
	if cfg.SchedSwitches {
		if collector, err := newSwitchCollector(cfg.Cores); err != nil {
			ui.Warnf("context switch counts unavailable: %v", err)
		} else {
			defer collector.Close()
			switches = collector
		}
	}

	if cfg.Banner && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(ui.Banner())
	}

	return jitter.Run(ctx, jitter.Options{
		Cores:    cfg.Cores,
		Interval: cfg.Interval,
		Warmup:   cfg.Warmup,
		Runs:     cfg.Runs,
		NewSource: func() (hrtimer.Source, error) {
			src, err := hrtimer.NewSource()
			if err != nil {
				return nil, err
			}
			log.Printf("counter calibrated: %d ticks/s, resolution %v", src.Frequency(), src.Resolution())
			return src, nil
		},
		Binder:   affinity.NewBinder(),
		Console:  os.Stdout,
		Log:      report.FileSink{Path: cfg.LogPath},
		Switches: switches,
		Warn:     ui.Warnf,
		OnStart: func(workers int) {
			log.Printf("measuring %d cores, warm-up %d samples, logging to %s", workers, cfg.Warmup, cfg.LogPath)
		},
	})
}

func newSwitchCollector(cores int) (*sched.Collector, error) {
	// Raise rlimit for locked memory so the eBPF map and program can load on older kernels.
	if err := unix.Setrlimit(unix.RLIMIT_MEMLOCK, &unix.Rlimit{
		Cur: unix.RLIM_INFINITY,
		Max: unix.RLIM_INFINITY,
	}); err != nil {
		return nil, fmt.Errorf("raising rlimit memlock: %w", err)
	}
	return sched.NewCollector(cores)
}
