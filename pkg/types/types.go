package types

import "time"

// DefaultInterval is how often workers sample and the reporter prints.
const DefaultInterval = time.Second

// DefaultWarmupIterations is the number of discarded samples each worker takes before measuring.
const DefaultWarmupIterations = 1_000_000

// DefaultLogPath is the append-only report log, relative to the working directory.
const DefaultLogPath = "data.txt"

// CoreSample is one row of a report: the latest delta observed on a core.
type CoreSample struct {
	Core      int
	Delta     float64 // seconds
	Frequency int64   // counter ticks per second
}

// SwitchStat holds how many context switches a core performed during a report window.
type SwitchStat struct {
	Core     int
	Switches uint64
}
