package chart

import (
	"io"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const echartsHeight = "420px"

// EChartsWidget renders a chart as a standalone go-echarts document. Each
// Redraw rebuilds the underlying chart from the stored data and kind.
type EChartsWidget struct {
	mu     sync.RWMutex
	id     string
	title  string
	theme  string
	kind   Kind
	series Series
	built  components.Charter
}

// NewEChartsWidget creates a widget. An empty theme uses the westeros theme.
func NewEChartsWidget(id, title, theme string, kind Kind) *EChartsWidget {
	if theme == "" {
		theme = types.ThemeWesteros
	}
	w := &EChartsWidget{id: id, title: title, theme: theme, kind: kind}
	w.built = w.build()
	return w
}

func (w *EChartsWidget) ID() string { return w.id }

func (w *EChartsWidget) Kind() Kind {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.kind
}

func (w *EChartsWidget) SetKind(k Kind) {
	w.mu.Lock()
	w.kind = k
	w.mu.Unlock()
}

func (w *EChartsWidget) SetData(s Series) {
	w.mu.Lock()
	w.series = s
	w.mu.Unlock()
}

func (w *EChartsWidget) Redraw() {
	w.mu.Lock()
	w.built = w.build()
	w.mu.Unlock()
}

// Charter returns the chart built by the last Redraw.
func (w *EChartsWidget) Charter() components.Charter {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.built
}

// Render writes the chart as a full HTML page.
func (w *EChartsWidget) Render(out io.Writer) error {
	w.mu.RLock()
	built := w.built
	w.mu.RUnlock()
	return built.(interface{ Render(io.Writer) error }).Render(out)
}

func (w *EChartsWidget) globalOptions() []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: w.title}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: w.id,
			Theme:   w.theme,
			Width:   "100%",
			Height:  echartsHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(w.kind == KindProportional)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (w *EChartsWidget) build() components.Charter {
	if w.kind == KindProportional {
		pie := charts.NewPie()
		pie.SetGlobalOptions(w.globalOptions()...)
		pie.AddSeries(w.title, toPieData(w.series),
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}))
		return pie
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(w.globalOptions()...)
	bar.SetXAxis(w.series.Labels)
	bar.AddSeries(w.title, toBarData(w.series))
	return bar
}

func toBarData(s Series) []opts.BarData {
	data := make([]opts.BarData, s.Len())
	for i := range data {
		data[i] = opts.BarData{
			Name:      s.Labels[i],
			Value:     valueAt(s, i),
			ItemStyle: itemStyle(s, i),
		}
	}
	return data
}

func toPieData(s Series) []opts.PieData {
	data := make([]opts.PieData, s.Len())
	for i := range data {
		data[i] = opts.PieData{
			Name:      s.Labels[i],
			Value:     valueAt(s, i),
			ItemStyle: itemStyle(s, i),
		}
	}
	return data
}

func valueAt(s Series, i int) float64 {
	if i < len(s.Values) {
		return s.Values[i]
	}
	return 0
}

func itemStyle(s Series, i int) *opts.ItemStyle {
	if i >= len(s.Colors) || s.Colors[i] == "" {
		return nil
	}
	return &opts.ItemStyle{Color: s.Colors[i]}
}

// EChartsFactory builds EChartsWidgets and can write all of them as one page.
type EChartsFactory struct {
	Theme string

	mu      sync.Mutex
	widgets []*EChartsWidget
}

// New implements Factory.
func (f *EChartsFactory) New(id, title string, kind Kind) Widget {
	w := NewEChartsWidget(id, title, f.Theme, kind)
	f.mu.Lock()
	f.widgets = append(f.widgets, w)
	f.mu.Unlock()
	return w
}

// Widgets returns the widgets created so far.
func (f *EChartsFactory) Widgets() []*EChartsWidget {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*EChartsWidget, len(f.widgets))
	copy(out, f.widgets)
	return out
}

// WriteHTML renders every widget onto a single page.
func (f *EChartsFactory) WriteHTML(out io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "Inventory dashboard"
	for _, w := range f.Widgets() {
		page.AddCharts(w.Charter())
	}
	return page.Render(out)
}
