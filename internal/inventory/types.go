package inventory

import (
	"github.com/goccy/go-json"
)

// DashboardStats is the payload of the stats endpoint. A new value replaces the
// previous one wholesale on every refresh.
type DashboardStats struct {
	Equipment EquipmentStats `json:"equipment"`
	Tickets   TicketStats    `json:"tickets"`
	Alerts    Alerts         `json:"alerts"`
	Timestamp string         `json:"timestamp"`
}

// EquipmentStats counts equipment by lifecycle state.
type EquipmentStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	InUse     int `json:"in_use"`
	InRepair  int `json:"in_repair"`
}

// TicketStats counts support tickets.
type TicketStats struct {
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Critical   int `json:"critical"`
}

// Alerts holds the counters that drive the alerts panel.
type Alerts struct {
	WarrantyExpiring   int `json:"warranty_expiring"`
	MaintenancePending int `json:"maintenance_pending"`
}

// ChartDataset is the payload of the equipment-chart endpoint.
type ChartDataset struct {
	ByType   []CategoryCount `json:"by_type"`
	ByStatus []StatusCount   `json:"by_status"`
}

// CategoryCount is one slice of the equipment-by-type breakdown.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Code  string `json:"type,omitempty"`
}

// StatusCount is one slice of the equipment-by-status breakdown. StatusCode is
// a stable key (AVA, INU, REP, RET, LOS, DIS) used for color assignment.
type StatusCount struct {
	Label      string `json:"label"`
	Count      int    `json:"count"`
	StatusCode string `json:"status_code"`
}

// UnmarshalJSON accepts the status code under either "status_code" or the
// server's "status" key.
func (s *StatusCount) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label      string `json:"label"`
		Count      int    `json:"count"`
		StatusCode string `json:"status_code"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Label = raw.Label
	s.Count = raw.Count
	s.StatusCode = raw.StatusCode
	if s.StatusCode == "" {
		s.StatusCode = raw.Status
	}
	return nil
}

// ActivityFeed is the payload of the recent-activity endpoint. Both lists are
// bounded and ordered most recent first.
type ActivityFeed struct {
	Maintenance []MaintenanceEntry `json:"maintenance"`
	Tickets     []TicketEntry      `json:"tickets"`
}

// MaintenanceEntry is one recent maintenance log.
type MaintenanceEntry struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	StartDate       string `json:"start_date"`
	MaintenanceType string `json:"maintenance_type"`
	EquipmentBrand  string `json:"equipment_brand"`
	EquipmentModel  string `json:"equipment_model"`
	TechnicianName  string `json:"technician_name"`
}

// TicketEntry is one recent support ticket.
type TicketEntry struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	CreatedAt      string `json:"created_at"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	CreatedByName  string `json:"created_by_name"`
	EquipmentModel string `json:"equipment_model"`
}
