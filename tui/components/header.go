package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/tui/styles"
)

// HeaderInfo is what the header bar shows.
type HeaderInfo struct {
	Profile     string
	BaseURL     string
	Loading     bool
	Spinner     string
	AutoRefresh time.Duration
	Version     string
}

// RenderHeader renders the top header bar with app name, profile, loading
// indicator, and auto-refresh state.
func RenderHeader(theme styles.Theme, info HeaderInfo, width int) string {
	bg := lipgloss.NewStyle().Background(theme.Base01)
	sep := bg.Foreground(theme.Base03).Render("  |  ")

	left := bg.Foreground(theme.Base0D).Bold(true).Render("invdash")

	name := info.Profile
	if name == "" {
		name = "(no profile)"
	}
	center := bg.Foreground(theme.Base05).Render(name)
	if info.BaseURL != "" {
		center += bg.Foreground(theme.Base03).Render(" " + info.BaseURL)
	}

	status := bg.Foreground(theme.Base0B).Render("IDLE")
	if info.Loading {
		status = bg.Foreground(theme.Base0A).Render(info.Spinner + " LOADING")
	}

	auto := "auto: off"
	autoColor := theme.Base04
	if info.AutoRefresh > 0 {
		auto = fmt.Sprintf("auto: %s", info.AutoRefresh)
		autoColor = theme.Base0C
	}
	autoSeg := bg.Foreground(autoColor).Render(auto)

	content := bg.Render(" ") + left + sep + center + sep + status + sep + autoSeg
	if info.Version != "" {
		content += sep + bg.Foreground(theme.Base04).Render("v"+info.Version)
	}

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		MaxHeight(1).
		Render(content)
}
