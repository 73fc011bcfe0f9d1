package config

import (
	"testing"

	"github.com/spf13/viper"
)

func load(t *testing.T) *Config {
	t.Helper()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := load(t)

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.CSRFCookie != "csrftoken" || cfg.Backend.CSRFHeader != "X-CSRFToken" {
		t.Errorf("csrf = %q / %q", cfg.Backend.CSRFCookie, cfg.Backend.CSRFHeader)
	}
	if cfg.Limits.MinChars != 10 || cfg.Limits.MaxChars != 2000 {
		t.Errorf("limits = %d..%d", cfg.Limits.MinChars, cfg.Limits.MaxChars)
	}
	if cfg.Limits.CounterDebounceMS != 500 {
		t.Errorf("counterDebounceMS = %d", cfg.Limits.CounterDebounceMS)
	}
	if cfg.Session.CookieName != "dmc_session" || cfg.Session.TTLMinutes != 60 {
		t.Errorf("session = %q / %d", cfg.Session.CookieName, cfg.Session.TTLMinutes)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("cache.Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Cache.CatalogTTLSec != 300 || cfg.Cache.DashboardTTLSec != 30 {
		t.Errorf("cache TTLs = %d / %d", cfg.Cache.CatalogTTLSec, cfg.Cache.DashboardTTLSec)
	}
	if cfg.RateLimit.MaxRequestsPerMinute != 60 {
		t.Errorf("rate limit = %d", cfg.RateLimit.MaxRequestsPerMinute)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %q / %q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DEEPMINDCHECK_SERVER_PORT", "9999")
	t.Setenv("DEEPMINDCHECK_BACKEND_BASEURL", "http://classifier:9000")
	t.Setenv("DEEPMINDCHECK_LIMITS_MAXCHARS", "500")

	cfg := load(t)

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "http://classifier:9000" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Limits.MaxChars != 500 {
		t.Errorf("Limits.MaxChars = %d, want 500", cfg.Limits.MaxChars)
	}
}
