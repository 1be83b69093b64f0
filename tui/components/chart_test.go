package components

import (
	"strings"
	"testing"
	"time"

	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/inventory"
	"github.com/tonhe/invdash/internal/notify"
	"github.com/tonhe/invdash/tui/styles"
)

func testStyles() *styles.Styles {
	return styles.NewStyles(styles.Resolve(styles.DefaultSlug))
}

func TestSegmentWidthsFillWidth(t *testing.T) {
	s := chart.Series{Labels: []string{"a", "b", "c"}, Values: []float64{1, 1, 1}}
	got := segmentWidths(s, 10)
	sum := 0
	for _, n := range got {
		sum += n
	}
	if sum != 10 {
		t.Errorf("expected segments to fill 10 cells, got %v", got)
	}
}

func TestSegmentWidthsZeroTotal(t *testing.T) {
	s := chart.Series{Labels: []string{"a"}, Values: []float64{0}}
	if got := segmentWidths(s, 10); got[0] != 0 {
		t.Errorf("expected no cells for a zero total, got %v", got)
	}
}

func TestBarString(t *testing.T) {
	if got := barString(10, 10, 4); got != "████" {
		t.Errorf("expected a full bar, got %q", got)
	}
	if got := barString(5, 10, 4); got != "██" {
		t.Errorf("expected half a bar, got %q", got)
	}
	if got := barString(0, 10, 4); got != "" {
		t.Errorf("expected an empty bar, got %q", got)
	}
	if got := []rune(barString(1, 10, 4)); len(got) != 1 || got[0] == '█' {
		t.Errorf("expected a single partial block, got %q", string(got))
	}
}

func TestTermFactoryThroughAdapter(t *testing.T) {
	f := NewTermFactory()
	a := chart.NewAdapter(f)
	if f.Get(chart.StatusChartID) != nil {
		t.Fatal("expected no charts before Initialize")
	}
	a.Initialize()
	err := a.Update(inventory.ChartDataset{
		ByType: []inventory.CategoryCount{{Label: "Laptops", Count: 3}},
		ByStatus: []inventory.StatusCount{
			{StatusCode: "AVA", Label: "Available", Count: 5},
			{StatusCode: "LOS", Label: "Lost", Count: 1},
		},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	status := f.Get(chart.StatusChartID)
	if status == nil || status.Kind() != chart.KindBar {
		t.Fatal("expected a bar status chart")
	}
	if status.Redraws() != 1 {
		t.Errorf("expected one redraw, got %d", status.Redraws())
	}
	view := status.View(testStyles(), 60, 10)
	for _, want := range []string{"Equipment by status", "Available", "Lost", "5"} {
		if !strings.Contains(view, want) {
			t.Errorf("status chart view missing %q:\n%s", want, view)
		}
	}

	category := f.Get(chart.CategoryChartID)
	view = category.View(testStyles(), 60, 10)
	if !strings.Contains(view, "Laptops") || !strings.Contains(view, "100%") {
		t.Errorf("proportional view missing legend:\n%s", view)
	}
}

func TestTermChartEmpty(t *testing.T) {
	c := NewTermChart("x", "Empty", chart.KindBar)
	if view := c.View(testStyles(), 30, 6); !strings.Contains(view, "no data") {
		t.Errorf("expected placeholder, got:\n%s", view)
	}
}

func TestRenderToasts(t *testing.T) {
	st := testStyles()
	if got := RenderToasts(st, nil, 40); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	now := time.Now()
	toasts := make([]notify.Toast, 0, 5)
	for i := 0; i < 5; i++ {
		toasts = append(toasts, notify.Toast{
			Message:  "msg" + string(rune('a'+i)),
			Severity: notify.Success,
			Created:  now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	out := RenderToasts(st, toasts, 40)
	if lines := strings.Split(out, "\n"); len(lines) != MaxToasts {
		t.Errorf("expected %d lines, got %d", MaxToasts, len(lines))
	}
	if strings.Contains(out, "msga") || !strings.Contains(out, "msge") {
		t.Errorf("expected only the newest toasts:\n%s", out)
	}
}

func TestRenderHeader(t *testing.T) {
	theme := styles.Resolve(styles.DefaultSlug)
	out := RenderHeader(theme, HeaderInfo{Profile: "office", Loading: true, Spinner: "*", AutoRefresh: 30 * time.Second}, 120)
	for _, want := range []string{"invdash", "office", "LOADING", "auto: 30s"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q: %s", want, out)
		}
	}
}
