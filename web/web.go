// Package web holds the embedded HTML templates and the Echo renderer that
// executes them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// Flash is a one-shot notification shown on the next rendered page.  Kind is
// a Bootstrap alert class suffix: "success" or "danger".
type Flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

// Page is the value every template receives.
type Page struct {
	Title string
	Flash *Flash
	Data  any
}

var funcs = template.FuncMap{
	"join":     strings.Join,
	"contains": slices.Contains[[]string, string],
}

// Renderer implements echo.Renderer.  Each page is parsed together with the
// shared layout into its own template set so their "content" blocks never
// collide.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	layout, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(files, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == layoutFile {
			continue
		}
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(files, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(path.Base(name), ".html")] = t
	}
	return r, nil
}

// Render executes the named page inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, path.Base(layoutFile), data)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
