package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/tonhe/invdash/internal/activity"
	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/engine"
	"github.com/tonhe/invdash/internal/logging"
)

// discardRenderer satisfies engine.Renderer for commands that read the
// result from the controller after the cycle.
type discardRenderer struct{}

func (discardRenderer) SetLoading(bool)              {}
func (discardRenderer) Render(engine.Dashboard)      {}
func (discardRenderer) ShowFallback(engine.Fallback) {}

// refreshOnce runs a single cycle and returns its dashboard.
func refreshOnce(ctrl *engine.Controller) (engine.Dashboard, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := ctrl.TriggerRefresh(ctx); err != nil {
		return engine.Dashboard{}, err
	}
	d, _ := ctrl.Last()
	return d, nil
}

type snapshotCmd struct {
	JSON bool `name:"json" help:"Print the dashboard as JSON."`
}

func (c *snapshotCmd) Run(g *Globals) error {
	s, err := g.buildStack(false)
	if err != nil {
		return err
	}
	defer logging.Sync(s.log)

	ctrl, err := s.controller(discardRenderer{}, nil, nil)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	d, err := refreshOnce(ctrl)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	return printDashboard(os.Stdout, d)
}

// printDashboard writes the dashboard as plain tables.
func printDashboard(w io.Writer, d engine.Dashboard) error {
	cards := table.New().Border(lipgloss.NormalBorder()).Headers("Summary", "Value")
	for _, c := range d.Cards {
		cards.Row(c.Title, strconv.Itoa(c.Value))
	}

	alerts := table.New().Border(lipgloss.NormalBorder()).Headers("Alert", "Count", "Description")
	for _, a := range d.Alerts {
		alerts.Row(a.Title, strconv.Itoa(a.Count), a.Description)
	}

	byType := table.New().Border(lipgloss.NormalBorder()).Headers("Type", "Count")
	for _, it := range d.Charts.ByType {
		byType.Row(it.Label, strconv.Itoa(it.Count))
	}
	byStatus := table.New().Border(lipgloss.NormalBorder()).Headers("Status", "Count")
	for _, it := range d.Charts.ByStatus {
		byStatus.Row(it.Label, strconv.Itoa(it.Count))
	}

	_, err := fmt.Fprintf(w, "Updated %s\n\n%s\n%s\n%s\n%s\n%s\n%s\n",
		d.UpdatedAt.Format("2006-01-02 15:04:05"),
		cards.Render(),
		alerts.Render(),
		byType.Render(),
		byStatus.Render(),
		rowTable("Recent maintenance", d.Maintenance).Render(),
		rowTable("Recent tickets", d.Tickets).Render(),
	)
	return err
}

func rowTable(title string, rows []activity.Row) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder()).Headers(title, "Date", "Detail", "By", "Tag")
	for _, r := range rows {
		t.Row(r.Title, r.Date, r.Detail, r.Byline, r.Badge.Text)
	}
	return t
}

type exportCmd struct {
	Out          string `short:"o" type:"path" default:"invdash-charts.html" help:"HTML file to write."`
	Kind         string `default:"proportional" help:"Category chart form: bar or proportional."`
	EChartsTheme string `name:"echarts-theme" default:"westeros" help:"go-echarts theme name."`
}

func (c *exportCmd) Run(g *Globals) error {
	kind, err := chart.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	s, err := g.buildStack(false)
	if err != nil {
		return err
	}
	defer logging.Sync(s.log)

	factory := &chart.EChartsFactory{Theme: c.EChartsTheme}
	ctrl, err := s.controller(discardRenderer{}, chart.NewAdapter(factory), nil)
	if err != nil {
		return err
	}
	defer ctrl.Close()
	ctrl.ToggleChartType(kind == chart.KindBar)

	if _, err := refreshOnce(ctrl); err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	if err := factory.WriteHTML(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.log.Info("charts exported", zap.String("path", c.Out))
	fmt.Printf("Charts written to %s\n", c.Out)
	return nil
}
