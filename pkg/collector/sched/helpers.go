package sched

import "github.com/srodi/corejitter/pkg/types"

// windowCounts turns cumulative per-CPU counters into per-core counts since baseline.
// Cores beyond the counter slice report zero. A counter lower than its baseline
// (CPU went offline and came back) is reported as-is.
func windowCounts(current, baseline []uint64, cores int) []types.SwitchStat {
	stats := make([]types.SwitchStat, cores)
	for core := 0; core < cores; core++ {
		stats[core].Core = core
		if core >= len(current) {
			continue
		}
		count := current[core]
		if core < len(baseline) && baseline[core] <= count {
			count -= baseline[core]
		}
		stats[core].Switches = count
	}
	return stats
}
