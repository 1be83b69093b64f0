package engine

import (
	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
)

// BuildCards returns the six summary cards in display order.
func BuildCards(s inventory.DashboardStats) []Card {
	return []Card{
		{Title: "Total Equipment", Value: s.Equipment.Total, Icon: "▣", Token: format.TokenPrimary, Link: "/inventory/equipment/"},
		{Title: "Available", Value: s.Equipment.Available, Icon: "✔", Token: format.TokenSuccess, Link: "/inventory/equipment/?status=AVA"},
		{Title: "In Use", Value: s.Equipment.InUse, Icon: "◉", Token: format.TokenInfo, Link: "/inventory/equipment/?status=INU"},
		{Title: "In Repair", Value: s.Equipment.InRepair, Icon: "⚒", Token: format.TokenWarning, Link: "/inventory/equipment/?status=REP"},
		{Title: "Open Tickets", Value: s.Tickets.Open, Icon: "✉", Token: format.TokenSecondary, Link: "/inventory/support/tickets/?status=OPEN"},
		{Title: "Critical Tickets", Value: s.Tickets.Critical, Icon: "⚠", Token: format.TokenDanger, Link: "/inventory/support/tickets/?priority=CRITICAL"},
	}
}

// BuildAlerts returns the alert entries. With nothing pending it returns a
// single "No Alerts" entry so the panel is never empty.
func BuildAlerts(a inventory.Alerts) []Alert {
	var out []Alert
	if a.WarrantyExpiring > 0 {
		out = append(out, Alert{
			Title:       "Warranties Expiring",
			Count:       a.WarrantyExpiring,
			Icon:        "◷",
			Token:       format.TokenWarning,
			Description: "Equipment whose warranty expires in the next 30 days",
		})
	}
	if a.MaintenancePending > 0 {
		out = append(out, Alert{
			Title:       "Pending Maintenance",
			Count:       a.MaintenancePending,
			Icon:        "⚒",
			Token:       format.TokenInfo,
			Description: "Maintenance in progress and not yet finished",
		})
	}
	if len(out) == 0 {
		out = append(out, Alert{
			Title:       "No Alerts",
			Count:       0,
			Icon:        "✔",
			Token:       format.TokenSuccess,
			Description: "There are no critical alerts right now",
		})
	}
	return out
}
