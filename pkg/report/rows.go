package report

import (
	"strconv"
	"strings"

	"github.com/srodi/corejitter/pkg/types"
)

// CoreRow is one report line: a core's latest sample plus optional scheduler counters.
type CoreRow struct {
	types.CoreSample
	Switches uint64
}

// BuildRows merges the delta table with per-core context switch counts.
// Counts for cores outside the table are dropped; missing counts stay zero.
func BuildRows(samples []types.CoreSample, switches []types.SwitchStat) []CoreRow {
	rows := make([]CoreRow, len(samples))
	index := make(map[int]int, len(samples))
	for i, sample := range samples {
		rows[i] = CoreRow{CoreSample: sample}
		index[sample.Core] = i
	}
	for _, stat := range switches {
		if i, ok := index[stat.Core]; ok {
			rows[i].Switches += stat.Switches
		}
	}
	return rows
}

// Format renders a report block:
//
//	Run <n>
//	Core <i> - Delta <seconds> - Frequency <ticks/s>
//
// With withSwitches set every core line ends in " - Switches <n>".
func Format(run int, rows []CoreRow, withSwitches bool) string {
	var b strings.Builder
	b.WriteString("Run ")
	b.WriteString(strconv.Itoa(run))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString("Core ")
		b.WriteString(strconv.Itoa(row.Core))
		b.WriteString(" - Delta ")
		b.WriteString(strconv.FormatFloat(row.Delta, 'f', -1, 64))
		b.WriteString(" - Frequency ")
		b.WriteString(strconv.FormatInt(row.Frequency, 10))
		if withSwitches {
			b.WriteString(" - Switches ")
			b.WriteString(strconv.FormatUint(row.Switches, 10))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
