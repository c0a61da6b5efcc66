package views

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/charlesng35/companydesk/internal/icons"
	"github.com/charlesng35/companydesk/internal/theme"
)

const (
	// ThemeAction is the endpoint the switcher form posts to.
	ThemeAction = "/theme"
	// ThemeHotkey toggles the theme from anywhere on the page.
	ThemeHotkey = "t"

	switcherTip       = "Toggle theme"
	switcherIconClass = "h-3 w-3"
)

var switcherTemplate = template.Must(template.New("theme-switcher").Parse(
	`<form action="{{.Action}}" method="post" class="theme-switcher" data-theme-switcher>` +
		`{{if .CSRFToken}}<input type="hidden" name="{{.CSRFField}}" value="{{.CSRFToken}}">{{end}}` +
		`<span class="tooltip" data-tip="{{.Tip}}" data-hotkey="{{.Hotkey}}" title="{{.Tip}} ({{.Hotkey}})">` +
		`<button type="submit" class="{{.ButtonClass}}" aria-label="{{.Tip}}">{{.Icon}}</button>` +
		`</span>` +
		`<input type="hidden" name="theme" value="{{.Next}}">` +
		`</form>`))

// SwitcherProps configures a theme switcher rendering.
type SwitcherProps struct {
	Theme     theme.Theme
	Class     string
	CSRFField string
	CSRFToken string
}

// ThemeSwitcher renders the toggle form. The hidden theme field always carries
// the opposite of the current theme so a plain submit flips it.
func ThemeSwitcher(props SwitcherProps) (template.HTML, error) {
	current := theme.OrDefault(props.Theme, theme.Default)

	icon := Themed(current, icons.Moon(switcherIconClass), icons.Sun(switcherIconClass))

	buttonClass := "icon-button"
	if class := strings.TrimSpace(props.Class); class != "" {
		buttonClass += " " + class
	}

	csrfField := props.CSRFField
	if csrfField == "" {
		csrfField = DefaultCSRFField
	}

	var buf bytes.Buffer
	err := switcherTemplate.Execute(&buf, map[string]any{
		"Action":      ThemeAction,
		"CSRFField":   csrfField,
		"CSRFToken":   props.CSRFToken,
		"Tip":         switcherTip,
		"Hotkey":      ThemeHotkey,
		"ButtonClass": buttonClass,
		"Icon":        icon,
		"Next":        current.Opposite().String(),
	})
	if err != nil {
		return "", fmt.Errorf("views: render theme switcher: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Themed picks the markup matching the active theme.
func Themed(t theme.Theme, dark, light template.HTML) template.HTML {
	if t == theme.Dark {
		return dark
	}
	return light
}
