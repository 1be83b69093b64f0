package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/tui/components"
	"github.com/tonhe/invdash/tui/keys"
	"github.com/tonhe/invdash/tui/styles"
)

// HelpView renders a modal overlay showing all keyboard shortcuts.
type HelpView struct {
	sty     *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
	visible bool
}

// NewHelpView creates a new HelpView listing km.
func NewHelpView(sty *styles.Styles, km keys.KeyMap) HelpView {
	return HelpView{sty: sty, keys: km}
}

// Toggle flips the help overlay visibility.
func (v *HelpView) Toggle() {
	v.visible = !v.visible
}

// Hide closes the overlay.
func (v *HelpView) Hide() {
	v.visible = false
}

// IsVisible returns whether the help overlay is currently shown.
func (v HelpView) IsVisible() bool {
	return v.visible
}

// SetSize updates the available dimensions for the overlay.
func (v *HelpView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// helpSection is a titled group of bindings.
type helpSection struct {
	title    string
	bindings []key.Binding
}

func (v HelpView) sections() []helpSection {
	out := []helpSection{{
		title:    "Dashboard",
		bindings: []key.Binding{v.keys.Refresh, v.keys.ToggleChart, v.keys.Help, v.keys.Quit},
	}}
	if len(v.keys.Presets) > 0 {
		out = append(out, helpSection{title: "Auto-refresh", bindings: v.keys.Presets})
	}
	return out
}

// View renders the help overlay centered in the available space.
func (v HelpView) View() string {
	theme := v.sty.Theme
	sectionStyle := lipgloss.NewStyle().Foreground(theme.Base0E).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base05)
	dimStyle := lipgloss.NewStyle().Foreground(theme.Base04)

	sections := v.sections()
	keyWidth := 0
	for _, sec := range sections {
		for _, b := range sec.bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
		}
	}

	lines := []string{v.sty.ModalTitle.Render("Keyboard Shortcuts"), ""}
	for _, sec := range sections {
		lines = append(lines, sectionStyle.Render(sec.title))
		for _, b := range sec.bindings {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %s  %s",
				keyStyle.Render(components.PadRight(h.Key, keyWidth)), descStyle.Render(h.Desc)))
		}
		lines = append(lines, "")
	}
	lines = append(lines, dimStyle.Render("? or esc to close"))

	width := min(max(v.width/2, 38), 56)
	modal := v.sty.ModalBorder.Width(width - 4).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}
