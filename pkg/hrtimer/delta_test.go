package hrtimer_test

import (
	"math"
	"testing"
	"time"

	"github.com/srodi/corejitter/pkg/hrtimer"
	"github.com/srodi/corejitter/pkg/hrtimer/hrtimertest"
)

func TestDeltaTimerMeasuresElapsedTicks(t *testing.T) {
	cases := []struct {
		name      string
		frequency int64
		advance   time.Duration
	}{
		{"nanosecondCounter", hrtimer.NanosPerSecond, 1500 * time.Millisecond},
		{"qpcLikeCounter", 10_000_000, 250 * time.Millisecond},
		{"tinyStep", hrtimer.NanosPerSecond, 3 * time.Microsecond},
	}
	for _, tc := range cases {
		clock := hrtimertest.NewClock(tc.frequency)
		timer := hrtimer.NewDeltaTimer(clock)

		clock.Advance(tc.advance)
		got := timer.Sample()
		if want := tc.advance.Seconds(); math.Abs(got-want) > 1/float64(tc.frequency) {
			t.Fatalf("%s: expected %.9f, got %.9f", tc.name, want, got)
		}
	}
}

func TestDeltaTimerConsecutiveSamplesAreNonNegative(t *testing.T) {
	clock := hrtimertest.NewClock(hrtimer.NanosPerSecond)
	timer := hrtimer.NewDeltaTimer(clock)

	first := timer.Sample()
	second := timer.Sample()
	if first < 0 || second < 0 {
		t.Fatalf("expected non-negative deltas, got %v and %v", first, second)
	}
	if first != 0 || second != 0 {
		t.Fatalf("clock did not move, expected zero deltas, got %v and %v", first, second)
	}

	clock.AdvanceTicks(7)
	if got := timer.Sample(); got != 7e-9 {
		t.Fatalf("expected 7ns, got %v", got)
	}
	if got := timer.Sample(); got != 0 {
		t.Fatalf("baseline should move with each sample, got %v", got)
	}
}

func TestNewDeltaTimerResetsBaseline(t *testing.T) {
	clock := hrtimertest.NewClock(hrtimer.NanosPerSecond)
	old := hrtimer.NewDeltaTimer(clock)

	clock.Advance(5 * time.Second)
	fresh := hrtimer.NewDeltaTimer(clock)
	clock.Advance(time.Second)

	if got := fresh.Sample(); got != 1 {
		t.Fatalf("new timer should measure from its construction, got %v", got)
	}
	if got := old.Sample(); got != 6 {
		t.Fatalf("old timer should keep its own baseline, got %v", got)
	}
	if fresh.Frequency() != hrtimer.NanosPerSecond {
		t.Fatalf("unexpected frequency %d", fresh.Frequency())
	}
}

func TestTicksToDuration(t *testing.T) {
	if got := hrtimer.TicksToDuration(1500, hrtimer.NanosPerSecond); got != 1500*time.Nanosecond {
		t.Fatalf("expected 1.5us, got %v", got)
	}
	if got := hrtimer.TicksToDuration(10_000_000, 10_000_000); got != time.Second {
		t.Fatalf("expected 1s, got %v", got)
	}
}
