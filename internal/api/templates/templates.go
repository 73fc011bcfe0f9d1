// Package templates holds the embedded page templates. Every page is a
// {{define}} block; shared chrome lives in layout.html.
package templates

import (
	"embed"
	"html/template"
	"io"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "*.html"))

// Render writes the named page. Callers buffer the output so a failed
// render never leaves a half-written response behind.
func Render(w io.Writer, name string, data interface{}) error {
	return pages.ExecuteTemplate(w, name, data)
}
