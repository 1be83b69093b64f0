// Package profile loads per-server dashboard profiles from TOML files.
package profile

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied by Load.
const (
	DefaultMaxHistory = 120
	DefaultChartKind  = "proportional"
	// MaxPresets is the number of presets bound to the number keys.
	MaxPresets = 5
)

// DefaultPresets are the auto-refresh choices offered when a profile lists
// none. Zero disables auto-refresh.
var DefaultPresets = []time.Duration{0, 10 * time.Second, 30 * time.Second, time.Minute, 5 * time.Minute}

var (
	ErrNoBaseURL   = errors.New("profile: base_url is required")
	ErrInvalidName = errors.New("profile: name must be a plain file name")
)

// Profile describes one inventory server the dashboard can watch.
type Profile struct {
	Name           string          `toml:"name"`
	BaseURL        string          `toml:"base_url"`
	Session        string          `toml:"session"`
	AutoRefreshStr string          `toml:"auto_refresh"`
	AutoRefresh    time.Duration   `toml:"-"`
	PresetStrs     []string        `toml:"refresh_presets"`
	Presets        []time.Duration `toml:"-"`
	MaxHistory     int             `toml:"max_history"`
	ChartKind      string          `toml:"chart_kind"`
}

// SessionKey is the session store key, defaulting to the profile name.
func (p *Profile) SessionKey() string {
	if p.Session != "" {
		return p.Session
	}
	return p.Name
}

// New builds a profile for baseURL with every default filled in.
func New(name, baseURL string) (*Profile, error) {
	p := &Profile{Name: name, BaseURL: baseURL}
	if err := p.normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads the profile at path, validates it and fills in defaults.
// The profile name falls back to the file name.
func Load(path string) (*Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := p.normalize(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return &p, nil
}

func (p *Profile) normalize() error {
	if err := validateBaseURL(p.BaseURL); err != nil {
		return err
	}
	if p.AutoRefreshStr != "" {
		d, err := time.ParseDuration(p.AutoRefreshStr)
		if err != nil {
			return fmt.Errorf("auto_refresh: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("auto_refresh: must not be negative, got %s", p.AutoRefreshStr)
		}
		p.AutoRefresh = d
	}
	p.Presets = p.Presets[:0]
	for _, s := range p.PresetStrs {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("refresh_presets: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("refresh_presets: must not be negative, got %s", s)
		}
		p.Presets = append(p.Presets, d)
	}
	if len(p.Presets) == 0 {
		p.Presets = append([]time.Duration(nil), DefaultPresets...)
	}
	if len(p.Presets) > MaxPresets {
		p.Presets = p.Presets[:MaxPresets]
	}
	if p.MaxHistory <= 0 {
		p.MaxHistory = DefaultMaxHistory
	}
	if p.ChartKind == "" {
		p.ChartKind = DefaultChartKind
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return ErrNoBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: unsupported scheme %q", u.Scheme)
	}
	return nil
}

// Save writes p to path, serializing durations back into their string
// fields.
func Save(p *Profile, path string) error {
	if p.AutoRefresh > 0 || p.AutoRefreshStr != "" {
		p.AutoRefreshStr = p.AutoRefresh.String()
	}
	if len(p.Presets) > 0 {
		p.PresetStrs = make([]string, len(p.Presets))
		for i, d := range p.Presets {
			p.PresetStrs[i] = d.String()
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}

// Path returns the file a profile named name lives in under dir.
func Path(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	return filepath.Join(dir, name+".toml"), nil
}

// List returns the names (without .toml extension) of all profiles in dir,
// sorted. A missing directory yields no names.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Resolve picks the profile to use: the requested name, else the configured
// default, else the only profile in dir.
func Resolve(dir, requested, fallback string) (*Profile, error) {
	name := requested
	if name == "" {
		name = fallback
	}
	if name == "" {
		names, err := List(dir)
		if err != nil {
			return nil, err
		}
		switch len(names) {
		case 0:
			return nil, fmt.Errorf("no profiles in %s; create one with 'invdash profile add'", dir)
		case 1:
			name = names[0]
		default:
			return nil, fmt.Errorf("several profiles found (%s); pick one with --profile", strings.Join(names, ", "))
		}
	}
	path, err := Path(dir, name)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
