package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tonhe/invdash/internal/session"
)

type sessionCmd struct {
	Set    sessionSetCmd    `cmd:"" help:"Save the session cookie used for a profile."`
	Show   sessionShowCmd   `cmd:"" help:"List saved sessions with secrets masked."`
	Remove sessionRemoveCmd `cmd:"" help:"Delete a saved session."`
}

type sessionSetCmd struct {
	Name       string `arg:"" optional:"" help:"Session name. Defaults to the profile's session key."`
	Cookie     string `env:"INVDASH_SESSION_COOKIE" help:"Session cookie value. Prompted for when omitted."`
	CookieName string `name:"cookie-name" default:"sessionid" help:"Name of the session cookie."`
	CSRFToken  string `name:"csrf-token" env:"INVDASH_CSRF_TOKEN" help:"Optional CSRF token sent with every request."`
}

func (c *sessionSetCmd) Run(g *Globals) error {
	name := c.Name
	if name == "" {
		cfg, err := g.loadConfig()
		if err != nil {
			return err
		}
		p, err := g.resolveProfile(cfg)
		if err != nil {
			return err
		}
		name = p.SessionKey()
	}

	cookie := c.Cookie
	if cookie == "" {
		secret, err := promptSecret(fmt.Sprintf("%s cookie for %q: ", c.CookieName, name))
		if err != nil {
			return err
		}
		cookie = strings.TrimSpace(string(secret))
	}

	store, err := openSessions()
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	if err := store.Put(session.Session{
		Name:       name,
		CookieName: c.CookieName,
		Cookie:     cookie,
		CSRFToken:  c.CSRFToken,
	}); err != nil {
		return err
	}
	fmt.Printf("Session %q saved.\n", name)
	return nil
}

type sessionShowCmd struct{}

func (sessionShowCmd) Run() error {
	store, err := openSessions()
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	summaries, err := store.List()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No sessions saved.")
		return nil
	}

	t := table.New().Border(lipgloss.NormalBorder()).Headers("Name", "Cookie name", "Cookie", "CSRF", "Saved")
	for _, s := range summaries {
		csrf := "no"
		if s.HasCSRF {
			csrf = "yes"
		}
		t.Row(s.Name, s.CookieName, s.Cookie, csrf, s.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(os.Stdout, t.Render())
	return nil
}

type sessionRemoveCmd struct {
	Name string `arg:"" help:"Session to delete."`
}

func (c *sessionRemoveCmd) Run() error {
	store, err := openSessions()
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	if err := store.Remove(c.Name); err != nil {
		return err
	}
	fmt.Printf("Session %q removed.\n", c.Name)
	return nil
}
