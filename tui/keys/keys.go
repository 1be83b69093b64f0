package keys

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Refresh     key.Binding
	ToggleChart key.Binding
	Help        key.Binding
	Escape      key.Binding
	Quit        key.Binding
	// Presets[i] selects the i-th auto-refresh interval.
	Presets []key.Binding
}

// New builds the bindings for the given auto-refresh presets. Preset keys
// are the digits 0 through len(presets)-1.
func New(presets []time.Duration) KeyMap {
	km := KeyMap{
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		ToggleChart: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "bar/pie chart")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for i, d := range presets {
		if i > 9 {
			break
		}
		digit := fmt.Sprintf("%d", i)
		km.Presets = append(km.Presets, key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, PresetLabel(d)),
		))
	}
	return km
}

// PresetLabel describes an auto-refresh interval for help text.
func PresetLabel(d time.Duration) string {
	if d <= 0 {
		return "auto-refresh off"
	}
	return "every " + d.String()
}

// Preset returns the index of the preset bound to msg, or -1.
func (km KeyMap) Preset(msg fmt.Stringer) int {
	for i, b := range km.Presets {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}
