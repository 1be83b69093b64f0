package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/internal/notify"
	"github.com/tonhe/invdash/tui/styles"
)

// MaxToasts caps how many toasts are drawn at once. Older ones stay live
// until they expire but are not shown.
const MaxToasts = 3

// RenderToasts renders the newest toasts right-aligned, one per line, oldest
// on top. It returns "" when there is nothing to show.
func RenderToasts(st *styles.Styles, toasts []notify.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > MaxToasts {
		toasts = toasts[len(toasts)-MaxToasts:]
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		msg := Truncate(t.Message, width-4)
		pill := st.Badge(msg, styles.SeverityToken(t.Severity))
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, pill))
	}
	return strings.Join(lines, "\n")
}
