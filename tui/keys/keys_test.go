package keys

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPresetLookup(t *testing.T) {
	km := New([]time.Duration{0, 10 * time.Second, time.Minute})
	if len(km.Presets) != 3 {
		t.Fatalf("expected 3 preset bindings, got %d", len(km.Presets))
	}
	if got := km.Preset(runeKey('2')); got != 2 {
		t.Errorf("expected preset 2, got %d", got)
	}
	if got := km.Preset(runeKey('0')); got != 0 {
		t.Errorf("expected preset 0, got %d", got)
	}
	if got := km.Preset(runeKey('7')); got != -1 {
		t.Errorf("expected -1 for an unbound digit, got %d", got)
	}
}

func TestPresetLabel(t *testing.T) {
	if got := PresetLabel(0); got != "auto-refresh off" {
		t.Errorf("unexpected label %q", got)
	}
	if got := PresetLabel(30 * time.Second); got != "every 30s" {
		t.Errorf("unexpected label %q", got)
	}
}
