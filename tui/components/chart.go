package components

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/tui/styles"
)

// barBlocks are horizontal block characters from empty to full. Index 0 is
// empty (space), index 8 is a full block.
var barBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

const (
	maxLabelWidth = 14
	legendSwatch  = "■"
)

// TermChart is a chart.Widget drawn with block characters. SetData and
// SetKind are called from refresh goroutines; View from the UI loop.
type TermChart struct {
	mu      sync.Mutex
	id      string
	title   string
	kind    chart.Kind
	series  chart.Series
	redraws int
}

// NewTermChart returns an empty chart.
func NewTermChart(id, title string, kind chart.Kind) *TermChart {
	return &TermChart{id: id, title: title, kind: kind}
}

func (c *TermChart) ID() string { return c.id }

func (c *TermChart) Kind() chart.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *TermChart) SetKind(k chart.Kind) {
	c.mu.Lock()
	c.kind = k
	c.mu.Unlock()
}

func (c *TermChart) SetData(s chart.Series) {
	c.mu.Lock()
	c.series = s
	c.mu.Unlock()
}

// Redraw only counts; the UI loop repaints on its own tick.
func (c *TermChart) Redraw() {
	c.mu.Lock()
	c.redraws++
	c.mu.Unlock()
}

// Redraws reports how many times Redraw was called.
func (c *TermChart) Redraws() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redraws
}

// View renders the chart in a box of the given size.
func (c *TermChart) View(st *styles.Styles, width, height int) string {
	c.mu.Lock()
	title, kind, series := c.title, c.kind, c.series
	c.mu.Unlock()

	if width < 16 {
		width = 16
	}
	if height < 3 {
		height = 3
	}
	inner := width - 4 // border and padding

	lines := []string{st.PanelTitle.Render(Truncate(title, inner))}
	switch {
	case series.Len() == 0:
		lines = append(lines, st.Dim.Render("no data"))
	case kind == chart.KindBar:
		lines = append(lines, renderBars(series, inner)...)
	default:
		lines = append(lines, renderProportions(st, series, inner)...)
	}
	if len(lines) > height-2 {
		lines = lines[:height-2]
	}

	return st.Panel.
		Width(width - 2).
		Height(height - 2).
		Render(strings.Join(lines, "\n"))
}

// renderBars draws one horizontal bar per label, scaled to the largest
// value, with eighth-block precision.
func renderBars(s chart.Series, width int) []string {
	labelWidth := 0
	for _, l := range s.Labels {
		if n := len([]rune(l)); n > labelWidth {
			labelWidth = n
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	maxVal := 0.0
	valueWidth := 1
	for i := range s.Labels {
		v := valueOf(s, i)
		if v > maxVal {
			maxVal = v
		}
		if n := len(formatValue(v)); n > valueWidth {
			valueWidth = n
		}
	}
	barWidth := width - labelWidth - valueWidth - 2
	if barWidth < 1 {
		barWidth = 1
	}

	lines := make([]string, 0, s.Len())
	for i, label := range s.Labels {
		v := valueOf(s, i)
		bar := barString(v, maxVal, barWidth)
		colored := lipgloss.NewStyle().Foreground(colorOf(s, i)).Render(bar)
		lines = append(lines, fmt.Sprintf("%s %s %*s",
			PadRight(Truncate(label, labelWidth), labelWidth),
			colored+strings.Repeat(" ", barWidth-len([]rune(bar))),
			valueWidth, formatValue(v)))
	}
	return lines
}

// barString returns the block run for v on a scale where maxVal spans width
// cells.
func barString(v, maxVal float64, width int) string {
	if maxVal <= 0 || v <= 0 {
		return ""
	}
	eighths := int(math.Round(v / maxVal * float64(width*8)))
	if eighths > width*8 {
		eighths = width * 8
	}
	full, rem := eighths/8, eighths%8
	out := strings.Repeat(string(barBlocks[8]), full)
	if rem > 0 {
		out += string(barBlocks[rem])
	}
	return out
}

// renderProportions draws a single strip split by share of the total,
// followed by a legend.
func renderProportions(st *styles.Styles, s chart.Series, width int) []string {
	total := s.Total()
	cells := segmentWidths(s, width)

	var strip strings.Builder
	for i, n := range cells {
		if n == 0 {
			continue
		}
		strip.WriteString(lipgloss.NewStyle().
			Foreground(colorOf(s, i)).
			Render(strings.Repeat(string(barBlocks[8]), n)))
	}
	if total <= 0 {
		strip.WriteString(st.Dim.Render(strings.Repeat("░", width)))
	}

	lines := []string{strip.String()}
	for i, label := range s.Labels {
		v := valueOf(s, i)
		share := 0.0
		if total > 0 {
			share = v / total * 100
		}
		swatch := lipgloss.NewStyle().Foreground(colorOf(s, i)).Render(legendSwatch)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			swatch,
			PadRight(Truncate(label, maxLabelWidth), maxLabelWidth),
			st.Dim.Render(fmt.Sprintf("%s (%.0f%%)", formatValue(v), share))))
	}
	return lines
}

// segmentWidths splits width cells by share using largest remainders, so
// the segments always add up to width when the total is positive.
func segmentWidths(s chart.Series, width int) []int {
	out := make([]int, s.Len())
	total := s.Total()
	if total <= 0 || width <= 0 {
		return out
	}
	used := 0
	rems := make([]float64, s.Len())
	for i := range out {
		exact := valueOf(s, i) / total * float64(width)
		out[i] = int(exact)
		rems[i] = exact - float64(out[i])
		used += out[i]
	}
	for used < width {
		best := -1
		for i, r := range rems {
			if best < 0 || r > rems[best] {
				best = i
			}
		}
		out[best]++
		rems[best] = -1
		used++
	}
	return out
}

func valueOf(s chart.Series, i int) float64 {
	if i < len(s.Values) {
		return s.Values[i]
	}
	return 0
}

func colorOf(s chart.Series, i int) lipgloss.Color {
	if i < len(s.Colors) {
		return lipgloss.Color(format.ToHex(s.Colors[i]))
	}
	return lipgloss.Color(format.NeutralStatusColor)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// TermFactory creates TermCharts and keeps them by id for the view.
type TermFactory struct {
	mu     sync.Mutex
	charts map[string]*TermChart
}

// NewTermFactory returns an empty factory.
func NewTermFactory() *TermFactory {
	return &TermFactory{charts: make(map[string]*TermChart)}
}

// New implements chart.Factory.
func (f *TermFactory) New(id, title string, kind chart.Kind) chart.Widget {
	c := NewTermChart(id, title, kind)
	f.mu.Lock()
	f.charts[id] = c
	f.mu.Unlock()
	return c
}

// Get returns the chart created under id, or nil before initialization.
func (f *TermFactory) Get(id string) *TermChart {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.charts[id]
}
