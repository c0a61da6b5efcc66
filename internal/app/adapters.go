package app

import (
	"strings"

	"github.com/charlesng35/companydesk/internal/database"
	"github.com/charlesng35/companydesk/internal/theme"
)

// DatabaseConnection converts the database section into connection options
// for the selected driver.
func (c DatabaseConfig) DatabaseConnection() database.Config {
	cfg := database.Config{
		Driver:     c.Driver,
		Path:       c.Path,
		DSN:        c.DSN,
		Options:    c.Options,
		LogQueries: c.LogQueries,
	}

	var auth DBAuthConfig
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "postgres", "postgresql":
		auth = c.Postgres
	case "mysql":
		auth = c.MySQL
	default:
		return cfg
	}

	cfg.Host = auth.Host
	cfg.Port = auth.Port
	cfg.Name = auth.Database
	cfg.User = auth.Username
	cfg.Password = auth.Password
	return cfg
}

// SessionConfig converts the theme section into preference cookie options.
// The secret must already be resolved; see database.EnsureThemeCookieSecret.
func (c ThemeConfig) SessionConfig() theme.SessionConfig {
	fallback, _ := theme.Parse(strings.TrimSpace(c.Default))
	return theme.SessionConfig{
		CookieName: c.Cookie.Name,
		Secret:     c.Cookie.Secret,
		MaxAge:     c.Cookie.MaxAge,
		Secure:     c.Cookie.Secure,
		Default:    theme.OrDefault(fallback, theme.Default),
	}
}
