package views

import (
	"sync"
	"time"

	"github.com/tonhe/invdash/internal/activity"
	"github.com/tonhe/invdash/internal/engine"
)

// RowList is a thread-safe activity list.
type RowList struct {
	mu   sync.Mutex
	rows []activity.Row
}

// SetRows replaces the list contents.
func (l *RowList) SetRows(rows []activity.Row) {
	l.mu.Lock()
	l.rows = rows
	l.mu.Unlock()
}

// Rows returns the current contents.
func (l *RowList) Rows() []activity.Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows
}

// PanelState is a copy of what the dashboard panels show.
type PanelState struct {
	Loading   bool
	Loaded    bool
	Cards     []engine.Card
	Alerts    []engine.Alert
	Fallback  *engine.Fallback
	UpdatedAt time.Time
}

// Panels implements engine.Renderer. The controller writes to it from refresh
// goroutines and the view reads a snapshot on every frame.
type Panels struct {
	mu       sync.Mutex
	loading  bool
	loaded   bool
	cards    []engine.Card
	alerts   []engine.Alert
	fallback *engine.Fallback
	updated  time.Time

	maintenance activity.ListTarget
	tickets     activity.ListTarget
}

// NewPanels returns empty panels writing rows into the given lists.
func NewPanels(maintenance, tickets activity.ListTarget) *Panels {
	return &Panels{maintenance: maintenance, tickets: tickets}
}

// SetLoading implements engine.Renderer.
func (p *Panels) SetLoading(loading bool) {
	p.mu.Lock()
	p.loading = loading
	p.mu.Unlock()
}

// Render implements engine.Renderer. A successful cycle clears any fallback.
func (p *Panels) Render(d engine.Dashboard) {
	p.mu.Lock()
	p.loaded = true
	p.cards = d.Cards
	p.alerts = d.Alerts
	p.fallback = nil
	p.updated = d.UpdatedAt
	p.mu.Unlock()

	p.maintenance.SetRows(d.Maintenance)
	p.tickets.SetRows(d.Tickets)
}

// ShowFallback implements engine.Renderer. Only the summary cards are
// replaced; the other panels keep their last contents.
func (p *Panels) ShowFallback(f engine.Fallback) {
	p.mu.Lock()
	p.fallback = &f
	p.mu.Unlock()
}

// State returns a snapshot of the panels.
func (p *Panels) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PanelState{
		Loading:   p.loading,
		Loaded:    p.loaded,
		Cards:     p.cards,
		Alerts:    p.alerts,
		Fallback:  p.fallback,
		UpdatedAt: p.updated,
	}
}
