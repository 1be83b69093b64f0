package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsJSON = `{
  "equipment": {"total": 50, "available": 30, "in_use": 15, "in_repair": 5},
  "tickets": {"open": 3, "in_progress": 2, "critical": 1},
  "alerts": {"warranty_expiring": 2, "maintenance_pending": 1},
  "timestamp": "2024-03-05T14:30:00+00:00"
}`

const chartJSON = `{
  "by_type": [{"type": "LAP", "label": "Laptop", "count": 12}, {"type": "MON", "label": "Monitor", "count": 4}],
  "by_status": [{"status": "AVA", "label": "Available", "count": 10}, {"status_code": "LOS", "label": "Lost", "count": 1}]
}`

const activityJSON = `{
  "maintenance": [{"id": 7, "title": "Replace fan", "start_date": "2024-03-04T09:00:00+00:00",
    "maintenance_type": "REP", "equipment_brand": "Dell", "equipment_model": "Latitude",
    "technician_name": "Ana Ruiz"}],
  "tickets": [{"id": 3, "title": "No network", "created_at": "2024-03-05T08:00:00+00:00",
    "priority": "HIGH", "status": "OPEN", "created_by_name": "Luis", "equipment_model": "N/A"}]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		Credentials: &Credentials{Cookie: "abc123", CSRFToken: "tok"},
	})
	require.NoError(t, err)
	return c
}

func apiHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("sessionid")
		if err != nil || cookie.Value != "abc123" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case StatsEndpoint.Path:
			_, _ = w.Write([]byte(statsJSON))
		case ChartEndpoint.Path:
			_, _ = w.Write([]byte(chartJSON))
		case ActivityEndpoint.Path:
			_, _ = w.Write([]byte(activityJSON))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestClientStats(t *testing.T) {
	c := newTestServer(t, apiHandler(t))
	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Equipment.Total)
	assert.Equal(t, 15, stats.Equipment.InUse)
	assert.Equal(t, 2, stats.Tickets.InProgress)
	assert.Equal(t, 1, stats.Alerts.MaintenancePending)
}

func TestClientEquipmentChartStatusKeyFallback(t *testing.T) {
	c := newTestServer(t, apiHandler(t))
	ds, err := c.EquipmentChart(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.ByStatus, 2)
	assert.Equal(t, "AVA", ds.ByStatus[0].StatusCode)
	assert.Equal(t, "LOS", ds.ByStatus[1].StatusCode)
	assert.Equal(t, "LAP", ds.ByType[0].Code)
}

func TestClientRecentActivity(t *testing.T) {
	c := newTestServer(t, apiHandler(t))
	feed, err := c.RecentActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, feed.Maintenance, 1)
	require.Len(t, feed.Tickets, 1)
	assert.Equal(t, "Ana Ruiz", feed.Maintenance[0].TechnicianName)
	assert.Equal(t, "HIGH", feed.Tickets[0].Priority)
}

func TestClientStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.Stats(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.Code)
	assert.Equal(t, "Stats API: 500", err.Error())
}

func TestClientDecodeError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login</html>"))
	})
	_, err := c.RecentActivity(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: url})
	require.NoError(t, err)
	_, err = c.EquipmentChart(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Chart API")
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.ErrorIs(t, err, ErrNoBaseURL)

	_, err = NewClient(ClientConfig{BaseURL: "ftp://example.com"})
	assert.Error(t, err)

	c, err := NewClient(ClientConfig{BaseURL: "https://inv.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://inv.example.com", c.BaseURL())
}

func TestClientRequestRate(t *testing.T) {
	srv := httptest.NewServer(apiHandler(t))
	t.Cleanup(srv.Close)
	c, err := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		Credentials: &Credentials{Cookie: "abc123"},
		RequestRate: 0.01,
	})
	require.NoError(t, err)

	// a whole cycle fits in the burst
	for i := 0; i < 3; i++ {
		_, err := c.Stats(context.Background())
		require.NoError(t, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = c.Stats(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stats API")

	_, err = NewClient(ClientConfig{BaseURL: srv.URL, RequestRate: -1})
	assert.Error(t, err)
}
