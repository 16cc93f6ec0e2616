// Package web serves the browser client for the blog API.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// IndexPageData is the data rendered into index.html
type IndexPageData struct {
	Title       string
	APIBasePath string
	// PreviewLength is the number of content characters shown per post in the list
	PreviewLength int
}

// Templates holds the parsed HTML templates and implements echo.Renderer
type Templates struct {
	templates *template.Template
}

// NewTemplates parses all embedded templates
func NewTemplates() (*Templates, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Templates{templates: tmpl}, nil
}

// Render renders a named template with the provided data
func (t *Templates) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl := t.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return nil
}

// IndexHandler renders the blog client page
func IndexHandler(data IndexPageData) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "index.html", data)
	}
}
