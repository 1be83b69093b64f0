package components

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"Laptop", 10, "Laptop"},
		{"Laptop", 6, "Laptop"},
		{"Laptops and monitors", 8, "Laptops…"},
		{"Monitor", 1, "…"},
		{"Monitor", 0, ""},
		{"Impresoras", 5, "Impr…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.expected {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.expected)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ñu", 4); got != "ñu  " {
		t.Errorf("expected rune-aware padding, got %q", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Errorf("expected no change when wider than width, got %q", got)
	}
}
