// Package session keeps the web application session cookies the dashboard
// replays, encrypted at rest under a master password.
package session

import (
	"strings"
	"time"

	"github.com/tonhe/invdash/internal/inventory"
)

// DefaultCookieName is the server's default session cookie.
const DefaultCookieName = "sessionid"

// Session is a saved browser session for one profile.
type Session struct {
	Name       string    `json:"name"`
	CookieName string    `json:"cookie_name,omitempty"`
	Cookie     string    `json:"cookie"`
	CSRFToken  string    `json:"csrf_token,omitempty"`
	SavedAt    time.Time `json:"saved_at"`
}

// Credentials converts the session into client credentials.
func (s *Session) Credentials() *inventory.Credentials {
	name := s.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return &inventory.Credentials{
		CookieName: name,
		Cookie:     s.Cookie,
		CSRFToken:  s.CSRFToken,
	}
}

// Summary is a Session with the secrets masked.
type Summary struct {
	Name       string    `json:"name"`
	CookieName string    `json:"cookie_name"`
	Cookie     string    `json:"cookie"`
	HasCSRF    bool      `json:"has_csrf"`
	SavedAt    time.Time `json:"saved_at"`
}

// Summarize returns a Summary safe to print.
func (s *Session) Summarize() Summary {
	name := s.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return Summary{
		Name:       s.Name,
		CookieName: name,
		Cookie:     Mask(s.Cookie),
		HasCSRF:    s.CSRFToken != "",
		SavedAt:    s.SavedAt,
	}
}

// Mask keeps the first and last four characters of a secret.
func Mask(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// Provider is the interface for session storage backends.
type Provider interface {
	List() ([]Summary, error)
	Get(name string) (*Session, error)
	Put(s Session) error
	Remove(name string) error
}
