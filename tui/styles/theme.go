package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/internal/format"
)

// DefaultSlug names the theme used when none is configured.
const DefaultSlug = "solarized-dark"

// Theme represents a Base16 color scheme.
type Theme struct {
	Name   string
	Base00 lipgloss.Color // Background
	Base01 lipgloss.Color // Lighter background
	Base02 lipgloss.Color // Selection
	Base03 lipgloss.Color // Comments / dim
	Base04 lipgloss.Color // Light foreground
	Base05 lipgloss.Color // Foreground
	Base06 lipgloss.Color // Light foreground
	Base07 lipgloss.Color // Light background
	Base08 lipgloss.Color // Red
	Base09 lipgloss.Color // Orange
	Base0A lipgloss.Color // Yellow
	Base0B lipgloss.Color // Green
	Base0C lipgloss.Color // Cyan
	Base0D lipgloss.Color // Blue
	Base0E lipgloss.Color // Magenta
	Base0F lipgloss.Color // Brown
}

// Token maps a semantic color token onto the scheme. Unknown tokens use the
// secondary color.
func (t Theme) Token(tok format.Token) lipgloss.Color {
	switch tok {
	case format.TokenPrimary:
		return t.Base0D
	case format.TokenSuccess:
		return t.Base0B
	case format.TokenInfo:
		return t.Base0C
	case format.TokenWarning:
		return t.Base0A
	case format.TokenDanger:
		return t.Base08
	case format.TokenDark:
		return t.Base03
	default:
		return t.Base04
	}
}

var sortedSlugs []string

func init() {
	sortedSlugs = make([]string, 0, len(Themes))
	for slug := range Themes {
		sortedSlugs = append(sortedSlugs, slug)
	}
	sort.Strings(sortedSlugs)
}

// GetThemeByName returns a theme by its slug, or nil if not found.
func GetThemeByName(name string) *Theme {
	t, ok := Themes[name]
	if !ok {
		return nil
	}
	return &t
}

// Resolve returns the named theme, falling back to DefaultSlug.
func Resolve(name string) Theme {
	if t := GetThemeByName(name); t != nil {
		return *t
	}
	return Themes[DefaultSlug]
}

// ListThemes returns sorted theme slugs.
func ListThemes() []string {
	return sortedSlugs
}
