package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonhe/invdash/internal/activity"
	"github.com/tonhe/invdash/internal/engine"
	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
	"github.com/tonhe/invdash/tui/components"
	"github.com/tonhe/invdash/tui/keys"
	"github.com/tonhe/invdash/tui/styles"
)

type fixture struct {
	panels      *Panels
	maintenance *RowList
	tickets     *RowList
	view        DashboardView
}

func newFixture(width, height int) *fixture {
	f := &fixture{maintenance: &RowList{}, tickets: &RowList{}}
	f.panels = NewPanels(f.maintenance, f.tickets)
	sty := styles.NewStyles(styles.Resolve(styles.DefaultSlug))
	f.view = NewDashboardView(sty, f.panels, components.NewTermFactory(), f.maintenance, f.tickets)
	f.view.SetSize(width, height)
	return f
}

func sampleDashboard() engine.Dashboard {
	stats := inventory.DashboardStats{
		Equipment: inventory.EquipmentStats{Total: 50, Available: 30, InUse: 15, InRepair: 5},
		Tickets:   inventory.TicketStats{Open: 3, Critical: 1},
	}
	return engine.Dashboard{
		Cards:  engine.BuildCards(stats),
		Alerts: engine.BuildAlerts(stats.Alerts),
		Maintenance: []activity.Row{{
			Title: "Fan replacement", Date: "4/3/2024", Detail: "Dell R740",
			Byline: "By: Ana", Badge: activity.Badge{Text: "Preventive", Token: format.NeutralToken},
		}},
		Tickets:   []activity.Row{},
		UpdatedAt: time.Now(),
	}
}

func TestPanelsRenderAndFallback(t *testing.T) {
	f := newFixture(160, 60)
	f.panels.SetLoading(true)
	assert.True(t, f.panels.State().Loading)

	d := sampleDashboard()
	f.panels.Render(d)
	state := f.panels.State()
	assert.True(t, state.Loaded)
	assert.Len(t, state.Cards, 6)
	require.Len(t, f.maintenance.Rows(), 1)
	assert.Empty(t, f.tickets.Rows())

	f.panels.ShowFallback(engine.Fallback{Title: engine.FallbackTitle, Message: engine.FallbackMessage, Err: errors.New("Stats API: 500")})
	state = f.panels.State()
	require.NotNil(t, state.Fallback)
	// the lists keep their last rows
	assert.Len(t, f.maintenance.Rows(), 1)

	f.panels.Render(d)
	assert.Nil(t, f.panels.State().Fallback)
}

func TestDashboardViewEmpty(t *testing.T) {
	f := newFixture(80, 20)
	assert.Contains(t, f.view.View(), "No data yet")
	f.panels.SetLoading(true)
	assert.Contains(t, f.view.View(), "Loading dashboard")
}

func TestDashboardViewCards(t *testing.T) {
	f := newFixture(160, 60)
	f.panels.Render(sampleDashboard())
	out := f.view.View()
	for _, want := range []string{"Total Equipment", "50", "Critical Tickets", "No Alerts", "Fan replacement", "Preventive", "Recent tickets"} {
		assert.Contains(t, out, want)
	}
}

func TestDashboardViewFallbackReplacesCards(t *testing.T) {
	f := newFixture(160, 60)
	f.panels.Render(sampleDashboard())
	f.panels.ShowFallback(engine.Fallback{Title: engine.FallbackTitle, Message: "check the connection", Err: errors.New("Chart API: 503")})
	out := f.view.View()
	assert.Contains(t, out, engine.FallbackTitle)
	assert.Contains(t, out, "Chart API: 503")
	assert.NotContains(t, out, "Total Equipment")
	assert.Contains(t, out, "Fan replacement")
}

func TestDashboardViewClipsToHeight(t *testing.T) {
	f := newFixture(160, 12)
	f.panels.Render(sampleDashboard())
	out := f.view.View()
	assert.LessOrEqual(t, len(strings.Split(out, "\n")), 12)
}

func TestHelpViewListsPresets(t *testing.T) {
	sty := styles.NewStyles(styles.Resolve(styles.DefaultSlug))
	v := NewHelpView(sty, keys.New([]time.Duration{0, 30 * time.Second}))
	v.SetSize(100, 40)
	assert.False(t, v.IsVisible())
	v.Toggle()
	assert.True(t, v.IsVisible())
	out := v.View()
	assert.Contains(t, out, "auto-refresh off")
	assert.Contains(t, out, "every 30s")
	v.Hide()
	assert.False(t, v.IsVisible())
}

func TestRenderListCutsLongTitlesWithEllipsis(t *testing.T) {
	f := newFixture(160, 60)
	rows := []activity.Row{{
		Title:  "Replace the failing power supply in the second floor server rack",
		Byline: "By: Ana",
	}}
	out := f.view.renderList("Maintenance", rows, 30, 20)
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "...")
}
