package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/internal/engine"
	"github.com/tonhe/invdash/tui/styles"
)

// sparkWidth is the width of the latency sparkline.
const sparkWidth = 20

// StatusInfo is what the status bar shows.
type StatusInfo struct {
	State   engine.RefreshState
	Summary engine.LatencySummary
	Latency []float64
}

// RenderStatusBar renders the two-line status/footer bar showing refresh
// info, request latency, and key bindings.
func RenderStatusBar(theme styles.Theme, info StatusInfo, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")
	text := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg)

	lastStr := "never"
	if !info.State.LastSuccess.IsZero() {
		lastStr = info.State.LastSuccess.Format("15:04:05")
	}
	lastSeg := text.Render(fmt.Sprintf("updated: %s", lastStr))

	healthColor := theme.Base0B
	health := "ok"
	if info.State.LastError != nil {
		healthColor = theme.Base08
		health = "error"
	}
	healthSeg := lipgloss.NewStyle().Foreground(healthColor).Background(bg).Render(health)

	latSeg := text.Render(fmt.Sprintf("latency: %s", FormatLatency(float64(info.Summary.Last.Milliseconds()))))
	spark := lipgloss.NewStyle().Foreground(theme.Base0C).Background(bg).Render(Sparkline(info.Latency, sparkWidth))
	rateSeg := text.Render(fmt.Sprintf("%.0f%% of %d ok", info.Summary.SuccessRate()*100, info.Summary.Cycles))

	topContent := bgStyle.Render(" ") + lastSeg + sep + healthSeg + sep + latSeg + bgStyle.Render(" ") + spark + sep + rateSeg
	topContent = fill(bgStyle, topContent, width)

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	refresh := ":refresh"
	if info.State.Loading {
		refresh = ":Refreshing..."
	}
	keys := bgStyle.Render(" ") +
		keyStyle.Render("r") + descStyle.Render(refresh) + spacer +
		keyStyle.Render("0-4") + descStyle.Render(":auto-refresh") + spacer +
		keyStyle.Render("t") + descStyle.Render(":"+info.State.ChartKind.String()) + spacer +
		keyStyle.Render("?") + descStyle.Render(":help") + spacer +
		keyStyle.Render("q") + descStyle.Render(":quit")
	keys = fill(bgStyle, keys, width)

	return lipgloss.JoinVertical(lipgloss.Left, topContent, keys)
}

func fill(bg lipgloss.Style, s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		s += bg.Render(strings.Repeat(" ", width-w))
	}
	return s
}
