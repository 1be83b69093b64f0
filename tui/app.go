// Package tui is the terminal front end of the inventory dashboard.
package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/engine"
	"github.com/tonhe/invdash/internal/notify"
	"github.com/tonhe/invdash/tui/components"
	"github.com/tonhe/invdash/tui/keys"
	"github.com/tonhe/invdash/tui/styles"
	"github.com/tonhe/invdash/tui/views"
)

// TickMsg triggers a periodic repaint so expired toasts and the status bar
// stay current.
type TickMsg struct{}

// ToastsChangedMsg repaints after a toast appears or expires.
type ToastsChangedMsg struct{}

// Repainter is a notify.Center change hook. It can be installed before the
// program exists; Attach connects it once the program is built.
type Repainter struct {
	prog atomic.Pointer[tea.Program]
}

// Attach sets the program that receives repaint messages.
func (r *Repainter) Attach(p *tea.Program) {
	r.prog.Store(p)
}

// Repaint asks the attached program to redraw. It never blocks.
func (r *Repainter) Repaint() {
	if p := r.prog.Load(); p != nil {
		go p.Send(ToastsChangedMsg{})
	}
}

// eventMsg carries one controller event into the update loop.
type eventMsg struct{ ev engine.Event }

// eventsClosedMsg reports that the subscription channel was closed.
type eventsClosedMsg struct{}

// refreshDoneMsg is returned when a manual refresh settles.
type refreshDoneMsg struct{ err error }

// autoRefreshMsg is returned when the auto-refresh timer was replaced.
type autoRefreshMsg struct{ err error }

// Screen is the part of the application the model draws from. It is built
// once by the caller and shared with the controller.
type Screen struct {
	Panels      *views.Panels
	Charts      *components.TermFactory
	Maintenance *views.RowList
	Tickets     *views.RowList
}

// NewScreen returns empty panels and a chart factory for the controller.
func NewScreen() Screen {
	s := Screen{
		Charts:      components.NewTermFactory(),
		Maintenance: &views.RowList{},
		Tickets:     &views.RowList{},
	}
	s.Panels = views.NewPanels(s.Maintenance, s.Tickets)
	return s
}

// Options configures an AppModel.
type Options struct {
	Controller  *engine.Controller
	Screen      Screen
	Toasts      *notify.Center
	Theme       styles.Theme
	Profile     string
	BaseURL     string
	Presets     []time.Duration
	AutoRefresh time.Duration
	ChartKind   chart.Kind
	Version     string
	Logger      *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl        *engine.Controller
	screen      Screen
	toasts      *notify.Center
	theme       styles.Theme
	sty         *styles.Styles
	keys        keys.KeyMap
	presets     []time.Duration
	autoRefresh time.Duration
	dashboard   views.DashboardView
	help        views.HelpView
	spinner     spinner.Model
	events      <-chan engine.Event
	unsubscribe func()
	header      components.HeaderInfo
	log         *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	width       int
	height      int
}

// NewAppModel creates an AppModel and subscribes it to the controller.
func NewAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sty := styles.NewStyles(opts.Theme)
	km := keys.New(opts.Presets)
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(opts.Theme.Base0A).Background(opts.Theme.Base01)),
	)

	opts.Controller.ToggleChartType(opts.ChartKind == chart.KindBar)
	events, unsubscribe := opts.Controller.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())

	return AppModel{
		ctrl:        opts.Controller,
		screen:      opts.Screen,
		toasts:      opts.Toasts,
		theme:       opts.Theme,
		sty:         sty,
		keys:        km,
		presets:     opts.Presets,
		autoRefresh: opts.AutoRefresh,
		dashboard: views.NewDashboardView(sty, opts.Screen.Panels, opts.Screen.Charts,
			opts.Screen.Maintenance, opts.Screen.Tickets),
		help:        views.NewHelpView(sty, km),
		spinner:     sp,
		events:      events,
		unsubscribe: unsubscribe,
		header: components.HeaderInfo{
			Profile: opts.Profile,
			BaseURL: opts.BaseURL,
			Version: opts.Version,
		},
		log:    logger.Named("tui"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Init runs the first refresh, arms the configured auto-refresh and starts
// the tick loop.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spinner.Tick,
		waitForEvent(m.events),
		m.refreshCmd(),
		m.startupAutoRefreshCmd(),
	)
}

// startupAutoRefreshCmd arms the configured interval. With none configured
// it does nothing, so startup shows no "disabled" toast.
func (m AppModel) startupAutoRefreshCmd() tea.Cmd {
	if m.autoRefresh <= 0 {
		return nil
	}
	return m.autoRefreshCmd(m.autoRefresh)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent reads one event from the subscription.
func waitForEvent(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{ev: ev}
	}
}

func (m AppModel) refreshCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return refreshDoneMsg{err: ctrl.TriggerRefresh(ctx)}
	}
}

func (m AppModel) autoRefreshCmd(d time.Duration) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return autoRefreshMsg{err: ctrl.SetAutoRefresh(d)}
	}
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case ToastsChangedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.log.Debug("controller event",
			zap.Stringer("kind", msg.ev.Kind),
			zap.Uint64("seq", msg.ev.Seq))
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, nil

	case refreshDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, engine.ErrCycleSuperseded) && !errors.Is(msg.err, context.Canceled) {
			m.log.Debug("manual refresh failed", zap.Error(msg.err))
		}
		return m, nil

	case autoRefreshMsg:
		if msg.err != nil {
			m.log.Warn("auto-refresh not changed", zap.Error(msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.shutdown()
		return m, tea.Quit
	}

	if m.help.IsVisible() {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
			m.help.Hide()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		// the control is disabled while a cycle is in flight
		if m.ctrl.State().Loading {
			return m, nil
		}
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.ToggleChart):
		m.ctrl.ToggleChartType(m.ctrl.State().ChartKind != chart.KindBar)
		return m, nil
	}

	if i := m.keys.Preset(msg); i >= 0 && i < len(m.presets) {
		return m, m.autoRefreshCmd(m.presets[i])
	}
	return m, nil
}

// shutdown stops the timer, cancels in-flight cycles and drops toasts.
func (m AppModel) shutdown() {
	m.cancel()
	m.unsubscribe()
	m.ctrl.Close()
	if m.toasts != nil {
		m.toasts.Close()
	}
}

// View renders the full application UI by composing header, body, toasts
// and status bar.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := m.ctrl.State()
	info := m.header
	info.Loading = state.Loading
	info.Spinner = m.spinner.View()
	info.AutoRefresh = state.AutoRefreshInterval
	header := components.RenderHeader(m.theme, info, m.width)

	history := m.ctrl.History()
	statusBar := components.RenderStatusBar(m.theme, components.StatusInfo{
		State:   state,
		Summary: engine.Summarize(history),
		Latency: engine.LatencySeries(history),
	}, m.width)

	var toasts string
	if m.toasts != nil {
		toasts = components.RenderToasts(m.sty, m.toasts.Active(), m.width)
	}

	// Fill body to the available height between header, toasts and status bar
	bodyHeight := m.height - 1 - 2
	if toasts != "" {
		bodyHeight -= lipgloss.Height(toasts)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.help.IsVisible() {
		body = m.help.View()
	} else {
		m.dashboard.SetSize(m.width, bodyHeight)
		body = m.dashboard.View()
	}

	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Foreground(m.theme.Base05)

	parts := []string{header, bodyStyle.Render(body)}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
