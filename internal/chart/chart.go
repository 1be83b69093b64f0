// Package chart owns the category and status chart widgets and keeps them in
// sync with the latest equipment dataset.
package chart

import (
	"errors"
	"sync"

	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
)

// Kind is the visual form of a chart.
type Kind int

const (
	KindBar Kind = iota
	KindProportional
)

func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindProportional:
		return "proportional"
	default:
		return "unknown"
	}
}

// ParseKind accepts "bar" and "proportional" (or "pie"/"doughnut").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bar":
		return KindBar, nil
	case "proportional", "pie", "doughnut":
		return KindProportional, nil
	}
	return KindBar, errors.New("chart: unknown kind " + s)
}

// Widget ids used when the adapter creates its charts.
const (
	CategoryChartID = "equipment-type"
	StatusChartID   = "equipment-status"
)

// PaletteOpacity is applied to category colors.
const PaletteOpacity = 0.8

// ErrNotInitialized is returned by Update before Initialize has run.
var ErrNotInitialized = errors.New("chart: adapter not initialized")

// Series is the data a widget draws: one label, value and color per entry.
type Series struct {
	Labels []string
	Values []float64
	Colors []string
}

// Len returns the number of entries.
func (s Series) Len() int { return len(s.Labels) }

// Total sums all values.
func (s Series) Total() float64 {
	var t float64
	for _, v := range s.Values {
		t += v
	}
	return t
}

// Widget is a chart drawing surface. Implementations must tolerate SetData
// and SetKind being called any number of times.
type Widget interface {
	ID() string
	Kind() Kind
	SetKind(Kind)
	SetData(Series)
	Redraw()
}

// Factory creates widgets.
type Factory interface {
	New(id, title string, kind Kind) Widget
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(id, title string, kind Kind) Widget

// New calls f.
func (f FactoryFunc) New(id, title string, kind Kind) Widget { return f(id, title, kind) }

// Adapter owns the category chart and the status chart.
type Adapter struct {
	mu           sync.Mutex
	factory      Factory
	category     Widget
	status       Widget
	categoryKind Kind
	last         *inventory.ChartDataset
}

// NewAdapter returns an uninitialized Adapter. The category chart starts in
// proportional form.
func NewAdapter(factory Factory) *Adapter {
	return &Adapter{
		factory:      factory,
		categoryKind: KindProportional,
	}
}

// Initialize creates both widgets. Later calls do nothing.
func (a *Adapter) Initialize() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.category != nil {
		return
	}
	a.category = a.factory.New(CategoryChartID, "Equipment by type", a.categoryKind)
	a.status = a.factory.New(StatusChartID, "Equipment by status", KindBar)
}

// Initialized reports whether Initialize has run.
func (a *Adapter) Initialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.category != nil
}

// Update replaces the data of both charts and redraws them.
func (a *Adapter) Update(ds inventory.ChartDataset) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.category == nil {
		return ErrNotInitialized
	}
	a.last = &ds
	a.category.SetData(CategorySeries(ds.ByType))
	a.category.Redraw()
	a.status.SetData(StatusSeries(ds.ByStatus))
	a.status.Redraw()
	return nil
}

// SetCategoryKind switches the category chart's visual form. The data it
// shows is left alone. Before Initialize the kind is remembered and used at
// creation.
func (a *Adapter) SetCategoryKind(kind Kind) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.categoryKind = kind
	if a.category == nil {
		return
	}
	a.category.SetKind(kind)
	a.category.Redraw()
}

// CategoryKind returns the current category chart form.
func (a *Adapter) CategoryKind() Kind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.categoryKind
}

// Widgets returns the category and status widgets, or nils before Initialize.
func (a *Adapter) Widgets() (category, status Widget) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.category, a.status
}

// Dataset returns the last dataset passed to Update.
func (a *Adapter) Dataset() (inventory.ChartDataset, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return inventory.ChartDataset{}, false
	}
	return *a.last, true
}

// CategorySeries builds the category chart data with palette colors.
func CategorySeries(items []inventory.CategoryCount) Series {
	s := Series{
		Labels: make([]string, len(items)),
		Values: make([]float64, len(items)),
		Colors: format.PaletteColors(len(items), PaletteOpacity),
	}
	for i, it := range items {
		s.Labels[i] = it.Label
		s.Values[i] = nonNegative(it.Count)
	}
	return s
}

// StatusSeries builds the status chart data with the fixed per-status colors.
func StatusSeries(items []inventory.StatusCount) Series {
	s := Series{
		Labels: make([]string, len(items)),
		Values: make([]float64, len(items)),
		Colors: make([]string, len(items)),
	}
	for i, it := range items {
		s.Labels[i] = it.Label
		s.Values[i] = nonNegative(it.Count)
		s.Colors[i] = format.StatusColor(it.StatusCode)
	}
	return s
}

func nonNegative(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}
