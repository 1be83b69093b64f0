package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/invdash/internal/activity"
	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/engine"
	"github.com/tonhe/invdash/tui/components"
	"github.com/tonhe/invdash/tui/styles"
)

// Layout constants (minimum sizes).
const (
	cardMinWidth = 20
	chartHeight  = 10
	rowLines     = 3
)

// DashboardView draws the cards, alerts, charts and activity lists.
type DashboardView struct {
	sty         *styles.Styles
	panels      *Panels
	charts      *components.TermFactory
	maintenance *RowList
	tickets     *RowList
	width       int
	height      int
}

// NewDashboardView creates a DashboardView reading from the given sources.
func NewDashboardView(sty *styles.Styles, panels *Panels, charts *components.TermFactory, maintenance, tickets *RowList) DashboardView {
	return DashboardView{
		sty:         sty,
		panels:      panels,
		charts:      charts,
		maintenance: maintenance,
		tickets:     tickets,
	}
}

// SetSize updates the available dimensions for the view.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the dashboard, clipped to the view height.
func (v DashboardView) View() string {
	state := v.panels.State()
	if !state.Loaded && state.Fallback == nil {
		return v.renderEmpty(state.Loading)
	}

	sections := []string{
		v.renderCards(state),
		v.renderAlerts(state.Alerts),
		v.renderCharts(),
	}
	used := 0
	for _, s := range sections {
		used += lipgloss.Height(s)
	}
	sections = append(sections, v.renderActivity(v.height-used))

	return clip(lipgloss.JoinVertical(lipgloss.Left, sections...), v.height)
}

// renderCards draws the summary tiles, or the fallback box in their place.
func (v DashboardView) renderCards(state PanelState) string {
	if state.Fallback != nil {
		f := state.Fallback
		lines := []string{v.sty.FallbackTitle.Render(f.Title), v.sty.Text.Render(f.Message)}
		if f.Err != nil {
			lines = append(lines, v.sty.Dim.Render(f.Err.Error()))
		}
		return v.sty.Fallback.Width(v.width - 2).Render(strings.Join(lines, "\n"))
	}

	perRow := len(state.Cards)
	for perRow > 1 && v.width/perRow < cardMinWidth {
		perRow = (perRow + 1) / 2
	}
	if perRow < 1 {
		perRow = 1
	}
	cardWidth := v.width / perRow

	var rows []string
	for start := 0; start < len(state.Cards); start += perRow {
		end := start + perRow
		if end > len(state.Cards) {
			end = len(state.Cards)
		}
		tiles := make([]string, 0, end-start)
		for _, c := range state.Cards[start:end] {
			tiles = append(tiles, v.renderCard(c, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v DashboardView) renderCard(c engine.Card, width int) string {
	color := v.sty.Theme.Token(c.Token)
	title := v.sty.TokenStyle(c.Token).Render(c.Icon + " " + c.Title)
	value := v.sty.CardValue.Render(fmt.Sprintf("%d", c.Value))
	return v.sty.Card.
		BorderForeground(color).
		Width(width - 2).
		Render(title + "\n" + value)
}

func (v DashboardView) renderAlerts(alerts []engine.Alert) string {
	lines := []string{v.sty.PanelTitle.Render("Alerts")}
	for _, a := range alerts {
		head := v.sty.TokenStyle(a.Token).Render(fmt.Sprintf("%s %s (%d)", a.Icon, a.Title, a.Count))
		lines = append(lines, head+"  "+v.sty.Dim.Render(a.Description))
	}
	return v.sty.Panel.Width(v.width - 2).Render(strings.Join(lines, "\n"))
}

func (v DashboardView) renderCharts() string {
	half := v.width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		v.chartView(chart.CategoryChartID, half),
		v.chartView(chart.StatusChartID, v.width-half),
	)
}

func (v DashboardView) chartView(id string, width int) string {
	c := v.charts.Get(id)
	if c == nil {
		return v.sty.Panel.Width(width - 2).Height(chartHeight - 2).Render(v.sty.Dim.Render("no data"))
	}
	return c.View(v.sty, width, chartHeight)
}

func (v DashboardView) renderActivity(height int) string {
	if height < 3 {
		return ""
	}
	half := v.width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderList("Recent maintenance", v.maintenance.Rows(), half, height),
		v.renderList("Recent tickets", v.tickets.Rows(), v.width-half, height),
	)
}

// renderList draws as many rows as fit in height.
func (v DashboardView) renderList(title string, rows []activity.Row, width, height int) string {
	inner := width - 4
	lines := []string{v.sty.PanelTitle.Render(title)}
	if len(rows) == 0 {
		lines = append(lines, v.sty.Dim.Render("nothing recent"))
	}
	room := (height - 3) / rowLines
	for i, r := range rows {
		if i >= room {
			break
		}
		badge := ""
		if r.Badge.Text != "" {
			badge = " " + v.sty.Badge(r.Badge.Text, r.Badge.Token)
		}
		titleWidth := inner - lipgloss.Width(badge)
		lines = append(lines,
			v.sty.Text.Bold(true).Render(components.Truncate(r.Title, titleWidth))+badge,
			v.sty.Dim.Render(components.Truncate(joinFields(r.Date, r.Detail), inner)),
			v.sty.Dim.Render(components.Truncate(r.Byline, inner)),
		)
	}
	return v.sty.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderEmpty renders a centered message before the first cycle settles.
func (v DashboardView) renderEmpty(loading bool) string {
	msg := "No data yet. Press r to refresh."
	if loading {
		msg = "Loading dashboard..."
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
		v.sty.Dim.Render(msg))
}

func joinFields(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "  ")
}

// clip keeps the first height lines of s.
func clip(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
