package hrtimer

import "time"

const (
	// DefaultGranularity is the coarse sleep step, the smallest sleep most schedulers honour.
	DefaultGranularity = time.Millisecond
	// DefaultSpinThreshold is the remaining time below which the sleeper only yields.
	DefaultSpinThreshold = time.Millisecond
)

// Sleeper blocks for a duration with less overshoot than a single coarse sleep.
// The zero value is not usable; build one with NewSleeper or SourceSleeper.
type Sleeper struct {
	// Elapsed returns a monotonic reading; only differences between readings are used.
	Elapsed func() time.Duration
	// Pause blocks the calling thread, ceding the CPU.
	Pause func(time.Duration)
	// Yield gives up the rest of the current quantum without blocking.
	Yield func()

	Granularity   time.Duration
	SpinThreshold time.Duration
}

var processStart = time.Now()

// NewSleeper returns a Sleeper driven by the Go monotonic clock and the OS yield call.
func NewSleeper() *Sleeper {
	return &Sleeper{
		Elapsed:       func() time.Duration { return time.Since(processStart) },
		Pause:         time.Sleep,
		Yield:         osYield,
		Granularity:   DefaultGranularity,
		SpinThreshold: DefaultSpinThreshold,
	}
}

// SourceSleeper returns a Sleeper whose stopwatch reads src.
func SourceSleeper(src Source) *Sleeper {
	s := NewSleeper()
	s.Elapsed = func() time.Duration {
		return TicksToDuration(src.Now(), src.Frequency())
	}
	return s
}

// Sleep blocks until at least d has elapsed on the stopwatch. Most of the wait is spent
// in coarse sleeps; only the final SpinThreshold is covered by yielding.
func (s *Sleeper) Sleep(d time.Duration) {
	start := s.Elapsed()
	for {
		elapsed := s.Elapsed() - start
		if elapsed >= d {
			return
		}
		if d-elapsed > s.SpinThreshold {
			s.Pause(s.Granularity)
		} else {
			s.Yield()
		}
	}
}
