package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults for settings missing from config.toml.
const (
	DefaultTheme          = "solarized-dark"
	DefaultLocale         = "es_ES"
	DefaultLogLevel       = "info"
	DefaultNotifyTTL      = 3 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultRequestRate    = 5.0
)

type Config struct {
	Theme             string        `toml:"theme"`
	DefaultProfile    string        `toml:"default_profile"`
	LogLevel          string        `toml:"log_level"`
	LogFile           string        `toml:"log_file"`
	Locale            string        `toml:"locale"`
	NotifyTTL         time.Duration `toml:"-"`
	NotifyTTLStr      string        `toml:"notify_ttl"`
	RequestTimeout    time.Duration `toml:"-"`
	RequestTimeoutStr string        `toml:"request_timeout"`
	RequestRate       float64       `toml:"request_rate"` // requests/s, 0 = unlimited
}

func DefaultConfig() *Config {
	return &Config{
		Theme:             DefaultTheme,
		DefaultProfile:    "",
		LogLevel:          DefaultLogLevel,
		Locale:            DefaultLocale,
		NotifyTTL:         DefaultNotifyTTL,
		NotifyTTLStr:      DefaultNotifyTTL.String(),
		RequestTimeout:    DefaultRequestTimeout,
		RequestTimeoutStr: DefaultRequestTimeout.String(),
		RequestRate:       DefaultRequestRate,
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.NotifyTTL, err = parsePositive(cfg.NotifyTTLStr, DefaultNotifyTTL); err != nil {
		return nil, fmt.Errorf("notify_ttl: %w", err)
	}
	if cfg.RequestTimeout, err = parsePositive(cfg.RequestTimeoutStr, DefaultRequestTimeout); err != nil {
		return nil, fmt.Errorf("request_timeout: %w", err)
	}
	if cfg.RequestRate < 0 {
		return nil, fmt.Errorf("request_rate: must not be negative, got %v", cfg.RequestRate)
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.NotifyTTLStr = cfg.NotifyTTL.String()
	cfg.RequestTimeoutStr = cfg.RequestTimeout.String()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// parsePositive parses s as a duration. Empty strings yield def.
func parsePositive(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}
