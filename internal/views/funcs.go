// Package views holds the server-rendered components shared by page templates.
package views

import (
	"html/template"
	"time"

	"github.com/charlesng35/companydesk/internal/icons"
	"github.com/charlesng35/companydesk/internal/theme"
)

// DefaultCSRFField is the form field carrying the CSRF token.
const DefaultCSRFField = "_csrf"

// Page is the data every layout-based template receives.
type Page struct {
	Title     string
	Theme     theme.Theme
	CSRFToken string
	Data      any
}

// FuncMap exposes the components to html/template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"icon":         icons.Render,
		"fileTextIcon": icons.FileText,
		"unlockIcon":   icons.Unlock,
		"themeSwitcher": func(t theme.Theme, class, csrfToken string) (template.HTML, error) {
			return ThemeSwitcher(SwitcherProps{Theme: t, Class: class, CSRFToken: csrfToken})
		},
		"opposite": func(t theme.Theme) theme.Theme {
			return theme.OrDefault(t, theme.Default).Opposite()
		},
		"date": func(ts time.Time) string {
			if ts.IsZero() {
				return ""
			}
			return ts.UTC().Format("2006-01-02")
		},
	}
}
