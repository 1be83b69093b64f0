package activity

import (
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
)

func utcRenderer() *Renderer {
	return NewRenderer(format.New(monday.LocaleEsES, time.UTC))
}

type captureTarget struct {
	rows  []Row
	calls int
}

func (c *captureTarget) SetRows(rows []Row) {
	c.rows = rows
	c.calls++
}

func TestRenderMaintenance(t *testing.T) {
	rows := utcRenderer().RenderMaintenance([]inventory.MaintenanceEntry{
		{
			Title:           "Replace fan",
			StartDate:       "2024-03-04T09:00:00+00:00",
			MaintenanceType: "PRE",
			EquipmentBrand:  "Dell",
			EquipmentModel:  "Latitude 5420",
			TechnicianName:  "Ana Ruiz",
		},
		{Title: "Bad date", StartDate: "soon", EquipmentModel: "X1"},
	})
	require.Len(t, rows, 2)

	assert.Equal(t, "Replace fan", rows[0].Title)
	assert.Equal(t, "4/3/2024", rows[0].Date)
	assert.Equal(t, "Dell Latitude 5420", rows[0].Detail)
	assert.Equal(t, "By: Ana Ruiz", rows[0].Byline)
	assert.Equal(t, Badge{Text: "PRE", Token: format.NeutralToken}, rows[0].Badge)

	assert.Equal(t, "soon", rows[1].Date)
	assert.Equal(t, "X1", rows[1].Detail)
}

func TestRenderTickets(t *testing.T) {
	rows := utcRenderer().RenderTickets([]inventory.TicketEntry{
		{Title: "No network", CreatedAt: "2024-03-05T08:00:00Z", Priority: "HIGH", Status: "OPEN", CreatedByName: "Luis"},
		{Title: "Odd", CreatedAt: "2024-03-01", Priority: "WHATEVER", Status: "CLOSED", CreatedByName: "Eva"},
	})
	require.Len(t, rows, 2)

	assert.Equal(t, "5/3/2024", rows[0].Date)
	assert.Equal(t, "Status: OPEN", rows[0].Detail)
	assert.Equal(t, "Created by: Luis", rows[0].Byline)
	assert.Equal(t, format.TokenDanger, rows[0].Badge.Token)

	assert.Equal(t, "Odd", rows[1].Title)
	assert.Equal(t, format.NeutralToken, rows[1].Badge.Token)
}

func TestRenderEmptyIsNonNil(t *testing.T) {
	r := utcRenderer()
	assert.NotNil(t, r.RenderMaintenance(nil))
	assert.Empty(t, r.RenderMaintenance(nil))
	assert.NotNil(t, r.RenderTickets([]inventory.TicketEntry{}))
}

func TestRenderPushesIntoTargets(t *testing.T) {
	var maint, tickets captureTarget
	feed := inventory.ActivityFeed{
		Tickets: []inventory.TicketEntry{{Title: "a"}, {Title: "b"}},
	}
	utcRenderer().Render(feed, &maint, &tickets)

	assert.Equal(t, 1, maint.calls)
	assert.Empty(t, maint.rows)
	require.Len(t, tickets.rows, 2)
	assert.Equal(t, "a", tickets.rows[0].Title)
	assert.Equal(t, "b", tickets.rows[1].Title)

	// nil targets are skipped
	utcRenderer().Render(feed, nil, nil)
}
