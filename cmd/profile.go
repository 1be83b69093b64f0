package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/config"
	"github.com/tonhe/invdash/internal/profile"
)

type profileCmd struct {
	List profileListCmd `cmd:"" help:"List profiles."`
	Add  profileAddCmd  `cmd:"" help:"Create or replace a profile."`
	Path profilePathCmd `cmd:"" help:"Show the profiles directory."`
}

type profileListCmd struct{}

func (profileListCmd) Run() error {
	dir, err := config.GetProfilesDir()
	if err != nil {
		return err
	}
	names, err := profile.List(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No profiles configured.")
		return nil
	}

	t := table.New().Border(lipgloss.NormalBorder()).Headers("Name", "Base URL", "Auto-refresh", "Session")
	for _, name := range names {
		path, err := profile.Path(dir, name)
		if err != nil {
			return err
		}
		p, err := profile.Load(path)
		if err != nil {
			t.Row(name, "error: "+err.Error(), "", "")
			continue
		}
		auto := "off"
		if p.AutoRefresh > 0 {
			auto = p.AutoRefresh.String()
		}
		t.Row(name, p.BaseURL, auto, p.SessionKey())
	}
	fmt.Fprintln(os.Stdout, t.Render())
	return nil
}

type profileAddCmd struct {
	Name        string   `arg:"" help:"Profile name (used as the file name)."`
	URL         string   `name:"url" required:"" help:"Inventory server URL."`
	AutoRefresh string   `name:"auto-refresh" help:"Auto-refresh interval applied at start, such as 30s."`
	Presets     []string `name:"preset" help:"Auto-refresh presets bound to keys 0-4 (repeat the flag)."`
	Session     string   `help:"Session key, when it differs from the profile name."`
	Chart       string   `default:"proportional" help:"Category chart form: bar or proportional."`
}

func (c *profileAddCmd) Run() error {
	if _, err := chart.ParseKind(c.Chart); err != nil {
		return err
	}
	p, err := profile.New(c.Name, c.URL)
	if err != nil {
		return err
	}
	p.Session = c.Session
	p.ChartKind = c.Chart
	if c.AutoRefresh != "" {
		d, err := time.ParseDuration(c.AutoRefresh)
		if err != nil {
			return fmt.Errorf("--auto-refresh: %w", err)
		}
		if d < 0 {
			return errors.New("--auto-refresh must not be negative")
		}
		p.AutoRefresh = d
	}
	if len(c.Presets) > 0 {
		p.Presets = p.Presets[:0]
		for _, s := range c.Presets {
			d, err := time.ParseDuration(s)
			if err != nil || d < 0 {
				return fmt.Errorf("--preset %q: must be a non-negative duration", s)
			}
			p.Presets = append(p.Presets, d)
		}
		if len(p.Presets) > profile.MaxPresets {
			return fmt.Errorf("at most %d presets", profile.MaxPresets)
		}
	}

	if err := config.EnsureDirs(); err != nil {
		return fmt.Errorf("creating config directories: %w", err)
	}
	dir, err := config.GetProfilesDir()
	if err != nil {
		return err
	}
	path, err := profile.Path(dir, c.Name)
	if err != nil {
		return err
	}
	if err := profile.Save(p, path); err != nil {
		return err
	}
	fmt.Printf("Profile %q written to %s.\n", c.Name, path)
	return nil
}

type profilePathCmd struct{}

func (profilePathCmd) Run() error {
	dir, err := config.GetProfilesDir()
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}
