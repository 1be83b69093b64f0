package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Endpoint names one of the dashboard API resources.
type Endpoint struct {
	Name string
	Path string
}

// Dashboard API endpoints, relative to the server base URL.
var (
	StatsEndpoint    = Endpoint{Name: "Stats", Path: "/inventory/api/dashboard/stats/"}
	ChartEndpoint    = Endpoint{Name: "Chart", Path: "/inventory/api/dashboard/equipment-chart/"}
	ActivityEndpoint = Endpoint{Name: "Activity", Path: "/inventory/api/dashboard/recent-activity/"}
)

var (
	// ErrDecode marks a response body that is not the expected JSON document.
	ErrDecode = errors.New("malformed response body")
	// ErrNoBaseURL is returned by NewClient when no server is configured.
	ErrNoBaseURL = errors.New("inventory: base url is required")
)

// StatusError reports a non-2xx response from an endpoint.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API: %d", e.Endpoint, e.Code)
}

// Credentials are replayed on every request so the server sees the same
// session a logged-in browser would.
type Credentials struct {
	CookieName string
	Cookie     string
	CSRFToken  string
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials *Credentials
	HTTPClient  *http.Client
	UserAgent   string
	// RequestRate caps requests per second across all endpoints. Zero means
	// unlimited. One cycle's three requests always fit in the burst.
	RequestRate float64
}

// cycleBurst lets a full refresh cycle through without waiting.
const cycleBurst = 3

// Client reads the dashboard endpoints of an inventory server.
type Client struct {
	base      *url.URL
	http      *http.Client
	creds     *Credentials
	userAgent string
	limiter   *rate.Limiter
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("inventory: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("inventory: unsupported scheme %q", base.Scheme)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "invdash"
	}
	if cfg.RequestRate < 0 {
		return nil, fmt.Errorf("inventory: request rate must not be negative")
	}
	c := &Client{
		base:      base,
		http:      httpClient,
		creds:     cfg.Credentials,
		userAgent: ua,
	}
	if cfg.RequestRate > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestRate), cycleBurst)
	}
	return c, nil
}

// BaseURL returns the server origin the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Stats fetches the summary counters.
func (c *Client) Stats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.get(ctx, StatsEndpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EquipmentChart fetches the equipment breakdowns.
func (c *Client) EquipmentChart(ctx context.Context) (*ChartDataset, error) {
	var out ChartDataset
	if err := c.get(ctx, ChartEndpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentActivity fetches the recent maintenance and ticket lists.
func (c *Client) RecentActivity(ctx context.Context) (*ActivityFeed, error) {
	var out ActivityFeed
	if err := c.get(ctx, ActivityEndpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, ep Endpoint, target any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s API: %w", ep.Name, err)
		}
	}
	u := c.base.JoinPath(ep.Path)
	// JoinPath drops the trailing slash the server routes require.
	if strings.HasSuffix(ep.Path, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%s API: build request: %w", ep.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("User-Agent", c.userAgent)
	c.applyCredentials(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s API: %w", ep.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: ep.Name, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%s API: %w: %v", ep.Name, ErrDecode, err)
	}
	return nil
}

func (c *Client) applyCredentials(req *http.Request) {
	if c.creds == nil || c.creds.Cookie == "" {
		return
	}
	name := c.creds.CookieName
	if name == "" {
		name = "sessionid"
	}
	req.AddCookie(&http.Cookie{Name: name, Value: c.creds.Cookie})
	if c.creds.CSRFToken != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.creds.CSRFToken})
	}
}
