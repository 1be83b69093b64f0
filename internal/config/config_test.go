package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme 'solarized-dark', got %q", cfg.Theme)
	}
	if cfg.NotifyTTL != 3*time.Second {
		t.Errorf("expected notify ttl 3s, got %v", cfg.NotifyTTL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected request timeout 10s, got %v", cfg.RequestTimeout)
	}
	if cfg.Locale != "es_ES" {
		t.Errorf("expected locale es_ES, got %q", cfg.Locale)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	cfg := DefaultConfig()
	cfg.Theme = "dracula"
	cfg.DefaultProfile = "office"
	cfg.NotifyTTL = 5 * time.Second

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Theme != "dracula" {
		t.Errorf("expected theme 'dracula', got %q", loaded.Theme)
	}
	if loaded.DefaultProfile != "office" {
		t.Errorf("expected profile 'office', got %q", loaded.DefaultProfile)
	}
	if loaded.NotifyTTL != 5*time.Second {
		t.Errorf("expected notify ttl 5s, got %v", loaded.NotifyTTL)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
}

func TestConfigLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("log_level = \"debug\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("expected default request timeout, got %v", cfg.RequestTimeout)
	}
}

func TestConfigLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	for _, body := range []string{"notify_ttl = \"soon\"\n", "request_timeout = \"-1s\"\n"} {
		if err := os.WriteFile(path, []byte(body), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("expected error for %q", body)
		}
	}
}

func TestConfigRequestRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("request_rate = 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.RequestRate != 0.5 {
		t.Errorf("expected request rate 0.5, got %v", cfg.RequestRate)
	}

	if err := os.WriteFile(path, []byte("request_rate = -1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for negative request_rate")
	}
}
