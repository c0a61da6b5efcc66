package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration for the companydesk server.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Theme       ThemeConfig       `mapstructure:"theme"`
	Companies   CompaniesConfig   `mapstructure:"companies"`
	Monitoring  MonitoringConfig  `mapstructure:"monitoring"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port      int             `mapstructure:"port"`
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"`
	CSRF      CSRFConfig      `mapstructure:"csrf"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// CSRFConfig controls CSRF protection middleware.
type CSRFConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RateLimitConfig bounds how many requests a client may issue per window.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver     string            `mapstructure:"driver"`
	Path       string            `mapstructure:"path"`
	DSN        string            `mapstructure:"dsn"`
	LogQueries bool              `mapstructure:"log_queries"`
	Options    map[string]string `mapstructure:"options"`
	Postgres   DBAuthConfig      `mapstructure:"postgres"`
	MySQL      DBAuthConfig      `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ThemeConfig controls the default theme and the preference cookie.
type ThemeConfig struct {
	Default string            `mapstructure:"default"`
	Cookie  ThemeCookieConfig `mapstructure:"cookie"`
}

// ThemeCookieConfig configures the signed preference cookie.
type ThemeCookieConfig struct {
	Name   string        `mapstructure:"name"`
	Secret string        `mapstructure:"secret"`
	MaxAge time.Duration `mapstructure:"max_age"`
	Secure bool          `mapstructure:"secure"`
}

// CompaniesConfig tunes the company loader.
type CompaniesConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Health     HealthConfig     `mapstructure:"health_check"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// HealthConfig toggles health endpoints.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// StatsMaxAge marks readiness degraded when the stats job has not succeeded for this long.
	StatsMaxAge time.Duration `mapstructure:"stats_max_age"`
}

// MaintenanceConfig schedules background jobs.
type MaintenanceConfig struct {
	StatsSchedule string `mapstructure:"stats_schedule"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
// A path ending in .yaml or .yml is read directly; anything else is treated as a search directory.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	explicitFile := false
	v.AddConfigPath("./config")
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if isConfigFile(path) {
			v.SetConfigFile(path)
			explicitFile = true
			continue
		}
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("COMPANYDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if explicitFile || !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

func isConfigFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.csrf.enabled", true)
	v.SetDefault("server.rate_limit.requests", 120)
	v.SetDefault("server.rate_limit.window", "1m")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/companydesk.sqlite")
	v.SetDefault("database.log_queries", false)

	v.SetDefault("theme.default", "light")
	v.SetDefault("theme.cookie.name", "companydesk_theme")
	v.SetDefault("theme.cookie.secret", "")
	v.SetDefault("theme.cookie.max_age", "8760h") // one year
	v.SetDefault("theme.cookie.secure", false)

	v.SetDefault("companies.page_size", 100)

	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")
	v.SetDefault("monitoring.health_check.enabled", true)
	v.SetDefault("monitoring.health_check.stats_max_age", "15m")

	v.SetDefault("maintenance.stats_schedule", "@every 5m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
