package web

import (
	"embed"
	"html/template"
	"io/fs"
)

// assets bundles page templates and static files into the binary.
//
//go:embed templates/*.tmpl static
var assets embed.FS

// Templates parses the embedded page templates with the supplied helper functions.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(assets, "templates/*.tmpl")
}

// Static returns the embedded static files rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
