package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/notify"
)

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	Theme Theme

	// Header / Footer
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderStatus lipgloss.Style
	Footer       lipgloss.Style
	FooterKey    lipgloss.Style
	FooterDesc   lipgloss.Style

	// Panels
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Dim        lipgloss.Style
	Text       lipgloss.Style

	// Cards
	Card      lipgloss.Style
	CardValue lipgloss.Style

	// Fallback
	Fallback      lipgloss.Style
	FallbackTitle lipgloss.Style

	// Sparkline
	SparklineStyle lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base01).
			Bold(true).
			Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		HeaderStatus: lipgloss.NewStyle().
			Foreground(theme.Base0B),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Background(theme.Base01).
			Padding(0, 1),
		FooterKey: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		FooterDesc: lipgloss.NewStyle().
			Foreground(theme.Base04),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base02).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),
		Dim: lipgloss.NewStyle().
			Foreground(theme.Base03),
		Text: lipgloss.NewStyle().
			Foreground(theme.Base05),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		CardValue: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Bold(true),

		Fallback: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base08).
			Padding(0, 1),
		FallbackTitle: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Bold(true),

		SparklineStyle: lipgloss.NewStyle().
			Foreground(theme.Base0C),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
	}
}

// TokenStyle colors text with a semantic token.
func (s *Styles) TokenStyle(tok format.Token) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Theme.Token(tok))
}

// Badge renders text as a filled pill in the token color.
func (s *Styles) Badge(text string, tok format.Token) string {
	return lipgloss.NewStyle().
		Foreground(s.Theme.Base00).
		Background(s.Theme.Token(tok)).
		Padding(0, 1).
		Render(text)
}

// SeverityToken maps a toast severity onto a color token.
func SeverityToken(sev notify.Severity) format.Token {
	switch sev {
	case notify.Success:
		return format.TokenSuccess
	case notify.Warning:
		return format.TokenWarning
	case notify.Danger:
		return format.TokenDanger
	default:
		return format.TokenInfo
	}
}
