package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// Renderer writes an HTML page for a named template and its view
// model. Handlers never inspect the rendered output; they only pick the
// template and hand over the data.
type Renderer interface {
	HTML(w http.ResponseWriter, status int, name string, data any) error
}

// TemplateRenderer loads every .html file under a directory once at
// construction. Templates are keyed by their slash-separated path
// relative to the root, e.g. "blog/posts.html" or "admin/error.html".
type TemplateRenderer struct {
	templates map[string]*template.Template
}

var _ Renderer = (*TemplateRenderer)(nil)

func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	templates := make(map[string]*template.Template)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		templates[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates from %s: %w", dir, err)
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}

	return &TemplateRenderer{templates: templates}, nil
}

// HTML executes the named template into a buffer first, so a failed
// execution leaves the response untouched and the caller can still
// produce its own error body.
func (r *TemplateRenderer) HTML(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %q: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
