package engine

import (
	"context"
	"time"

	"github.com/tonhe/invdash/internal/activity"
	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
	"github.com/tonhe/invdash/internal/notify"
)

// Source fetches the three dashboard payloads. inventory.Client implements it.
type Source interface {
	Stats(ctx context.Context) (*inventory.DashboardStats, error)
	EquipmentChart(ctx context.Context) (*inventory.ChartDataset, error)
	RecentActivity(ctx context.Context) (*inventory.ActivityFeed, error)
}

// Renderer receives the results of a cycle. Calls must not block on the UI.
type Renderer interface {
	SetLoading(loading bool)
	Render(d Dashboard)
	ShowFallback(f Fallback)
}

// Notifier shows a transient message. notify.Center implements it.
type Notifier interface {
	Notify(message string, sev notify.Severity) string
}

// ChartSink is the part of chart.Adapter the controller drives.
type ChartSink interface {
	Initialize()
	Update(ds inventory.ChartDataset) error
	SetCategoryKind(kind chart.Kind)
	CategoryKind() chart.Kind
}

// Card is one summary tile.
type Card struct {
	Title string       `json:"title"`
	Value int          `json:"value"`
	Icon  string       `json:"icon"`
	Token format.Token `json:"token"`
	Link  string       `json:"link,omitempty"`
}

// Alert is one entry of the alerts panel.
type Alert struct {
	Title       string       `json:"title"`
	Count       int          `json:"count"`
	Icon        string       `json:"icon"`
	Token       format.Token `json:"token"`
	Description string       `json:"description"`
}

// Dashboard is everything a successful cycle produces, applied as one unit.
type Dashboard struct {
	Cards       []Card                   `json:"cards"`
	Alerts      []Alert                  `json:"alerts"`
	Maintenance []activity.Row           `json:"maintenance"`
	Tickets     []activity.Row           `json:"tickets"`
	Stats       inventory.DashboardStats `json:"stats"`
	Charts      inventory.ChartDataset   `json:"charts"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// Fallback replaces the summary cards when a cycle fails.
type Fallback struct {
	Title   string
	Message string
	Err     error
}

// Fallback texts.
const (
	FallbackTitle   = "Data unavailable"
	FallbackMessage = "The dashboard data could not be loaded. Check the connection and try again."
)

// EventKind identifies a controller event.
type EventKind int

const (
	CycleStarted EventKind = iota
	CycleSucceeded
	CycleFailed
	CycleDiscarded
	AutoRefreshChanged
	ChartKindChanged
)

func (k EventKind) String() string {
	switch k {
	case CycleStarted:
		return "cycle-started"
	case CycleSucceeded:
		return "cycle-succeeded"
	case CycleFailed:
		return "cycle-failed"
	case CycleDiscarded:
		return "cycle-discarded"
	case AutoRefreshChanged:
		return "auto-refresh-changed"
	case ChartKindChanged:
		return "chart-kind-changed"
	default:
		return "unknown"
	}
}

// Event is sent to subscribers whenever controller state changes.
type Event struct {
	Kind     EventKind
	Seq      uint64
	Err      error
	Interval time.Duration
	Chart    chart.Kind
}

// CycleRecord is the outcome of one fetch-render cycle.
type CycleRecord struct {
	Seq       uint64
	Started   time.Time
	Duration  time.Duration
	Err       error
	Discarded bool
}

// OK reports whether the cycle applied its results.
func (r CycleRecord) OK() bool { return r.Err == nil && !r.Discarded }

// RefreshState is a copy of the controller's refresh bookkeeping.
type RefreshState struct {
	AutoRefreshInterval time.Duration
	Loading             bool
	Seq                 uint64
	ChartKind           chart.Kind
	LastSuccess         time.Time
	LastError           error
}
