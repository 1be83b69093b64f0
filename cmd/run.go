package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/logging"
	"github.com/tonhe/invdash/internal/notify"
	"github.com/tonhe/invdash/tui"
	"github.com/tonhe/invdash/tui/styles"
)

type runCmd struct {
	AutoRefresh string `name:"auto-refresh" help:"Auto-refresh interval such as 30s; 0 disables. Overrides the profile."`
	Chart       string `help:"Category chart form: bar or proportional. Overrides the profile."`
}

func (c *runCmd) Run(g *Globals, info buildInfo) error {
	s, err := g.buildStack(true)
	if err != nil {
		return err
	}
	defer logging.Sync(s.log)

	interval := s.profile.AutoRefresh
	if c.AutoRefresh != "" {
		if interval, err = time.ParseDuration(c.AutoRefresh); err != nil {
			return fmt.Errorf("--auto-refresh: %w", err)
		}
	}
	kindName := s.profile.ChartKind
	if c.Chart != "" {
		kindName = c.Chart
	}
	kind, err := chart.ParseKind(kindName)
	if err != nil {
		return err
	}

	screen := tui.NewScreen()
	repaint := &tui.Repainter{}
	toasts := notify.NewCenter(notify.WithTTL(s.cfg.NotifyTTL), notify.WithOnChange(repaint.Repaint))
	defer toasts.Close()
	ctrl, err := s.controller(screen.Panels, chart.NewAdapter(screen.Charts), toasts)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	model := tui.NewAppModel(tui.Options{
		Controller:  ctrl,
		Screen:      screen,
		Toasts:      toasts,
		Theme:       styles.Resolve(s.cfg.Theme),
		Profile:     s.profile.Name,
		BaseURL:     s.client.BaseURL(),
		Presets:     s.profile.Presets,
		AutoRefresh: interval,
		ChartKind:   kind,
		Version:     info.Version,
		Logger:      s.log,
	})

	s.log.Info("starting dashboard",
		zap.Duration("auto_refresh", interval),
		zap.Stringer("chart", kind))
	p := tea.NewProgram(model, tea.WithAltScreen())
	repaint.Attach(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
