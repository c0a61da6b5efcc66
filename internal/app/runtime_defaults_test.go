package app

import (
	"strings"
	"testing"
)

func TestApplyRuntimeDefaultsNormalizesZeroConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Monitoring.Prometheus.Enabled = true

	normalized, err := ApplyRuntimeDefaults(cfg)
	if err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}

	if cfg.Theme.Default != "light" {
		t.Fatalf("expected light default theme, got %q", cfg.Theme.Default)
	}
	if cfg.Companies.PageSize != 100 {
		t.Fatalf("expected page size 100, got %d", cfg.Companies.PageSize)
	}
	if cfg.Maintenance.StatsSchedule != "@every 5m" {
		t.Fatalf("expected default schedule, got %q", cfg.Maintenance.StatsSchedule)
	}
	if cfg.Monitoring.Prometheus.Endpoint != "/metrics" {
		t.Fatalf("expected /metrics endpoint, got %q", cfg.Monitoring.Prometheus.Endpoint)
	}
	for _, key := range []string{"theme.default", "companies.page_size", "maintenance.stats_schedule", "monitoring.prometheus.endpoint"} {
		if !normalized[key] {
			t.Fatalf("expected %s to be reported: %#v", key, normalized)
		}
	}
}

func TestApplyRuntimeDefaultsPreservesValidValues(t *testing.T) {
	cfg := &Config{}
	cfg.Theme.Default = "dark"
	cfg.Companies.PageSize = 25
	cfg.Maintenance.StatsSchedule = "*/10 * * * *"

	normalized, err := ApplyRuntimeDefaults(cfg)
	if err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}
	if len(normalized) != 0 {
		t.Fatalf("expected nothing normalized, got %#v", normalized)
	}
	if cfg.Theme.Default != "dark" || cfg.Companies.PageSize != 25 {
		t.Fatalf("unexpected rewrite: %#v", cfg)
	}
}

func TestApplyRuntimeDefaultsClampsPageSize(t *testing.T) {
	cfg := &Config{}
	cfg.Theme.Default = "dark"
	cfg.Companies.PageSize = 5000

	normalized, err := ApplyRuntimeDefaults(cfg)
	if err != nil {
		t.Fatalf("ApplyRuntimeDefaults returned error: %v", err)
	}
	if cfg.Companies.PageSize != 100 || !normalized["companies.page_size"] {
		t.Fatalf("expected page size clamp, got %d (%#v)", cfg.Companies.PageSize, normalized)
	}
}

func TestApplyRuntimeDefaultsRejectsBadSchedule(t *testing.T) {
	cfg := &Config{}
	cfg.Maintenance.StatsSchedule = "whenever"

	_, err := ApplyRuntimeDefaults(cfg)
	if err == nil || !strings.Contains(err.Error(), "maintenance.stats_schedule") {
		t.Fatalf("expected schedule error, got %v", err)
	}
}

func TestApplyRuntimeDefaultsNilConfig(t *testing.T) {
	_, err := ApplyRuntimeDefaults(nil)
	if err == nil || !strings.Contains(err.Error(), "config is nil") {
		t.Fatalf("expected nil config error, got %v", err)
	}
}
