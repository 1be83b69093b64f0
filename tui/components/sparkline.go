package components

import (
	"fmt"
	"math"
	"strings"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// failMark stands in for a failed cycle.
const failMark = '×'

// Sparkline draws cycle latencies right-aligned in width cells, scaled from
// zero to the slowest cycle shown. Negative values are failed cycles and
// render as failMark. Older points are dropped when data is wider than width.
func Sparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var peak float64
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(data)))
	for _, v := range data {
		sb.WriteRune(sparkRune(v, peak))
	}
	return sb.String()
}

func sparkRune(v, peak float64) rune {
	if v < 0 {
		return failMark
	}
	if peak == 0 {
		return blocks[0]
	}
	idx := int(math.Round(v / peak * float64(len(blocks)-1)))
	return blocks[min(max(idx, 0), len(blocks)-1)]
}

// FormatLatency formats a duration given in milliseconds.
func FormatLatency(ms float64) string {
	switch {
	case ms <= 0:
		return "-"
	case ms >= 60_000:
		return fmt.Sprintf("%.1fm", ms/60_000)
	case ms >= 1_000:
		return fmt.Sprintf("%.1fs", ms/1_000)
	default:
		return fmt.Sprintf("%.0fms", ms)
	}
}
