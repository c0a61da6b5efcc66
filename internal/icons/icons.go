// Package icons renders the application's static SVG icons.
package icons

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// Names of the registered icons.
const (
	FileTextName = "file-text"
	UnlockName   = "unlock"
	SunName      = "sun"
	MoonName     = "moon"
)

// ErrUnknownIcon is returned by Render for names that are not registered.
type ErrUnknownIcon struct {
	Name string
}

func (e ErrUnknownIcon) Error() string {
	return fmt.Sprintf("icons: unknown icon %q", e.Name)
}

// stroked icons share the same 24x24 outline frame; only the inner shapes differ.
var frame = template.Must(template.New("svg").Parse(
	`<svg fill="none" height="24" shape-rendering="geometricPrecision" stroke="currentColor" ` +
		`stroke-linecap="round" stroke-linejoin="round" stroke-width="1.5" viewBox="0 0 24 24" width="24"` +
		`{{if .Class}} class="{{.Class}}"{{end}} aria-hidden="true">{{.Body}}</svg>`))

var shapes = map[string]template.HTML{
	FileTextName: `<path d="M14 2H6a2 2 0 00-2 2v16a2 2 0 002 2h12a2 2 0 002-2V8z"/>` +
		`<path d="M14 2v6h6"/><path d="M16 13H8"/><path d="M16 17H8"/><path d="M10 9H8"/>`,
	UnlockName: `<rect x="3" y="11" width="18" height="11" rx="2" ry="2"/>` +
		`<path d="M7 11V7a5 5 0 019.9-1"/>`,
	SunName: `<circle cx="12" cy="12" r="4"/><path d="M12 2v2"/><path d="M12 20v2"/>` +
		`<path d="M4.93 4.93l1.41 1.41"/><path d="M17.66 17.66l1.41 1.41"/><path d="M2 12h2"/>` +
		`<path d="M20 12h2"/><path d="M6.34 17.66l-1.41 1.41"/><path d="M19.07 4.93l-1.41 1.41"/>`,
	MoonName: `<path d="M21 12.79A9 9 0 1111.21 3 7 7 0 0021 12.79z"/>`,
}

// Render returns the markup for the named icon with an optional class attribute.
// The class is HTML-escaped.
func Render(name, class string) (template.HTML, error) {
	body, ok := shapes[strings.TrimSpace(name)]
	if !ok {
		return "", ErrUnknownIcon{Name: name}
	}

	var buf bytes.Buffer
	err := frame.Execute(&buf, struct {
		Class string
		Body  template.HTML
	}{Class: strings.TrimSpace(class), Body: body})
	if err != nil {
		return "", fmt.Errorf("icons: render %q: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Names lists the registered icon names in sorted order.
func Names() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRender(name, class string) template.HTML {
	out, err := Render(name, class)
	if err != nil {
		panic(err)
	}
	return out
}

// FileText renders a document outline icon.
func FileText(class string) template.HTML { return mustRender(FileTextName, class) }

// Unlock renders an open padlock icon.
func Unlock(class string) template.HTML { return mustRender(UnlockName, class) }

// Sun renders the light theme icon.
func Sun(class string) template.HTML { return mustRender(SunName, class) }

// Moon renders the dark theme icon.
func Moon(class string) template.HTML { return mustRender(MoonName, class) }
