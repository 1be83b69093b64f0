package styles

import (
	"testing"

	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/notify"
)

func TestGetThemeByName(t *testing.T) {
	theme := GetThemeByName("solarized-dark")
	if theme == nil {
		t.Fatal("GetThemeByName('solarized-dark') returned nil")
	}
	if theme.Name != "Solarized Dark" {
		t.Errorf("expected name 'Solarized Dark', got %q", theme.Name)
	}
}

func TestGetThemeByNameMissing(t *testing.T) {
	theme := GetThemeByName("nonexistent")
	if theme != nil {
		t.Error("expected nil for nonexistent theme")
	}
}

func TestResolveFallsBack(t *testing.T) {
	if got := Resolve("nonexistent"); got.Name != "Solarized Dark" {
		t.Errorf("expected default theme, got %q", got.Name)
	}
	if got := Resolve("nord"); got.Name != "Nord" {
		t.Errorf("expected Nord, got %q", got.Name)
	}
}

func TestListThemes(t *testing.T) {
	themes := ListThemes()
	if len(themes) != len(Themes) {
		t.Errorf("expected %d themes, got %d", len(Themes), len(themes))
	}
	for i := 1; i < len(themes); i++ {
		if themes[i-1] > themes[i] {
			t.Errorf("themes not sorted: %q before %q", themes[i-1], themes[i])
		}
	}
}

func TestThemesComplete(t *testing.T) {
	for slug, theme := range Themes {
		if theme.Name == "" || theme.Base00 == "" || theme.Base0F == "" {
			t.Errorf("theme %q is missing fields", slug)
		}
	}
}

func TestTokenColors(t *testing.T) {
	theme := Themes["solarized-dark"]
	cases := map[format.Token]string{
		format.TokenPrimary:   string(theme.Base0D),
		format.TokenSuccess:   string(theme.Base0B),
		format.TokenWarning:   string(theme.Base0A),
		format.TokenDanger:    string(theme.Base08),
		format.TokenSecondary: string(theme.Base04),
		format.Token("nope"):  string(theme.Base04),
	}
	for tok, want := range cases {
		if got := string(theme.Token(tok)); got != want {
			t.Errorf("Token(%q) = %s, want %s", tok, got, want)
		}
	}
}

func TestSeverityToken(t *testing.T) {
	if SeverityToken(notify.Danger) != format.TokenDanger {
		t.Error("danger toasts should use the danger token")
	}
	if SeverityToken("") != format.TokenInfo {
		t.Error("unknown severities should use the info token")
	}
}
