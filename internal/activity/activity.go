// Package activity turns recent maintenance and ticket records into display
// rows.
package activity

import (
	"strings"

	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
)

// Badge is the small colored label at the right of a row.
type Badge struct {
	Text  string
	Token format.Token
}

// Row is one entry of an activity list.
type Row struct {
	Title  string
	Date   string
	Detail string
	Byline string
	Badge  Badge
}

// ListTarget receives rendered rows. Each call replaces the previous contents.
type ListTarget interface {
	SetRows([]Row)
}

// Renderer builds rows using a Formatter for dates.
type Renderer struct {
	fmt *format.Formatter
}

// NewRenderer returns a Renderer. A nil formatter uses format.Default().
func NewRenderer(f *format.Formatter) *Renderer {
	if f == nil {
		f = format.Default()
	}
	return &Renderer{fmt: f}
}

// RenderMaintenance builds one row per maintenance entry, in input order.
func (r *Renderer) RenderMaintenance(entries []inventory.MaintenanceEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Title:  e.Title,
			Date:   r.fmt.FormatDate(e.StartDate),
			Detail: joinNonEmpty(e.EquipmentBrand, e.EquipmentModel),
			Byline: "By: " + e.TechnicianName,
			Badge:  Badge{Text: e.MaintenanceType, Token: format.NeutralToken},
		})
	}
	return rows
}

// RenderTickets builds one row per ticket, in input order. The badge color
// follows the ticket priority.
func (r *Renderer) RenderTickets(entries []inventory.TicketEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Title:  e.Title,
			Date:   r.fmt.FormatDate(e.CreatedAt),
			Detail: "Status: " + e.Status,
			Byline: "Created by: " + e.CreatedByName,
			Badge:  Badge{Text: e.Priority, Token: format.PriorityColor(e.Priority)},
		})
	}
	return rows
}

// Render pushes both lists of the feed into their targets. Nil targets are
// skipped.
func (r *Renderer) Render(feed inventory.ActivityFeed, maintenance, tickets ListTarget) {
	if maintenance != nil {
		maintenance.SetRows(r.RenderMaintenance(feed.Maintenance))
	}
	if tickets != nil {
		tickets.SetRows(r.RenderTickets(feed.Tickets))
	}
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
