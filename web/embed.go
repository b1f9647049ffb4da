package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the page templates. Each page is looked up by its file name.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}
