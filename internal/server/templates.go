package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

//go:embed templates
var embeddedTemplates embed.FS

const layoutTemplate = "layout"

// TemplateRenderer manages HTML templates with hot-reload support.
// Every page is parsed on top of its own copy of the layout and partials,
// so pages can define the same block names.
type TemplateRenderer struct {
	fsys    fs.FS
	devMode bool

	mu    sync.RWMutex
	base  *template.Template
	pages map[string]*template.Template
}

// NewTemplateRenderer creates a new template renderer. An empty templateDir
// serves the templates compiled into the binary.
func NewTemplateRenderer(devMode bool, templateDir string) (*TemplateRenderer, error) {
	var fsys fs.FS
	if templateDir != "" {
		fsys = os.DirFS(templateDir)
	} else {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded templates: %w", err)
		}
		fsys = sub
		devMode = false
	}

	tr := &TemplateRenderer{
		fsys:    fsys,
		devMode: devMode,
	}

	if err := tr.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return tr, nil
}

// loadTemplates parses the layout, partials and every page
func (tr *TemplateRenderer) loadTemplates() error {
	funcMap := template.FuncMap{
		"truncate":   truncateSummary,
		"formatTime": formatTime,
		"initial":    initial,
		"add":        func(a, b int) int { return a + b },
	}

	base, err := template.New("").Funcs(funcMap).ParseFS(tr.fsys, "layout.html", "partials/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(tr.fsys, "pages/*.html")
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		tmpl, err := base.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone layout for %s: %w", file, err)
		}
		if _, err := tmpl.ParseFS(tr.fsys, file); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}

	tr.mu.Lock()
	tr.base = base
	tr.pages = pages
	tr.mu.Unlock()

	return nil
}

// RenderPage executes the layout for the named page ("blog", "article", ...).
func (tr *TemplateRenderer) RenderPage(w io.Writer, page string, data interface{}) error {
	if err := tr.reload(); err != nil {
		return err
	}

	tr.mu.RLock()
	tmpl, ok := tr.pages[page]
	tr.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	return execute(w, tmpl, layoutTemplate, data)
}

// RenderPartial executes a single partial, for HTMX swaps.
func (tr *TemplateRenderer) RenderPartial(w io.Writer, name string, data interface{}) error {
	if err := tr.reload(); err != nil {
		return err
	}

	tr.mu.RLock()
	base := tr.base
	tr.mu.RUnlock()

	return execute(w, base, name, data)
}

// reload re-parses templates from disk in dev mode
func (tr *TemplateRenderer) reload() error {
	if !tr.devMode {
		return nil
	}
	if err := tr.loadTemplates(); err != nil {
		return fmt.Errorf("failed to reload templates: %w", err)
	}
	return nil
}

// execute renders into a buffer first so a template error never leaves a
// half-written response.
func execute(w io.Writer, tmpl *template.Template, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Helper functions for templates

// formatTime formats a time.Time as "02/01/2006 15:04"
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// initial returns the upper-cased first letter of a name, "?" when empty
func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
