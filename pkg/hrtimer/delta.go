package hrtimer

// DeltaTimer reports the time elapsed between consecutive calls to Sample.
// It is owned by a single goroutine and is not safe for concurrent use.
type DeltaTimer struct {
	src       Source
	frequency float64
	lastTick  int64
}

// NewDeltaTimer arms a timer with the current tick as its baseline.
func NewDeltaTimer(src Source) *DeltaTimer {
	return &DeltaTimer{
		src:       src,
		frequency: float64(src.Frequency()),
		lastTick:  src.Now(),
	}
}

// Sample returns the seconds elapsed since the previous Sample (or since construction).
func (t *DeltaTimer) Sample() float64 {
	now := t.src.Now()
	delta := float64(now-t.lastTick) / t.frequency
	t.lastTick = now
	return delta
}

// Frequency returns the ticks per second of the underlying source.
func (t *DeltaTimer) Frequency() int64 {
	return t.src.Frequency()
}
