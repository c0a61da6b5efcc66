package app

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/charlesng35/companydesk/internal/services"
	"github.com/charlesng35/companydesk/internal/theme"
)

const defaultStatsSchedule = "@every 5m"

// ApplyRuntimeDefaults repairs settings that would otherwise break start-up.
// It returns the keys it rewrote so callers can log the event.
func ApplyRuntimeDefaults(cfg *Config) (map[string]bool, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	normalized := make(map[string]bool)

	raw := strings.TrimSpace(cfg.Theme.Default)
	if t, ok := theme.Parse(raw); ok {
		cfg.Theme.Default = t.String()
	} else {
		cfg.Theme.Default = theme.Default.String()
		normalized["theme.default"] = true
	}

	if size := services.ClampPageSize(cfg.Companies.PageSize); size != cfg.Companies.PageSize {
		cfg.Companies.PageSize = size
		normalized["companies.page_size"] = true
	}

	schedule := strings.TrimSpace(cfg.Maintenance.StatsSchedule)
	if schedule == "" {
		schedule = defaultStatsSchedule
		normalized["maintenance.stats_schedule"] = true
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("maintenance.stats_schedule: %w", err)
	}
	cfg.Maintenance.StatsSchedule = schedule

	if cfg.Monitoring.Prometheus.Enabled && !strings.HasPrefix(cfg.Monitoring.Prometheus.Endpoint, "/") {
		cfg.Monitoring.Prometheus.Endpoint = "/metrics"
		normalized["monitoring.prometheus.endpoint"] = true
	}

	return normalized, nil
}
