package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/practice"
)

//go:embed templates/*.html content/*.md
var assets embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// pageSet holds one parsed template per page, each composed with the layout.
type pageSet struct {
	pages      map[string]*template.Template
	importHelp template.HTML
}

// loadPages parses the embedded templates. Dates render in loc.
func loadPages(loc *time.Location) (*pageSet, error) {
	funcs := template.FuncMap{
		// Replaced per request in render
		"csrfField": func() template.HTML { return "" },
		"date": func(t time.Time) string {
			return t.In(loc).Format("Mon, Jan 2, 2006")
		},
		"dateTime": func(t time.Time) string {
			return t.In(loc).Format("Mon, Jan 2, 2006 3:04 PM")
		},
		"isoDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("2006-01-02")
		},
		"title": func(p practice.Practice) string {
			return p.DisplayTitle()
		},
		"lower": strings.ToLower,
	}

	names, err := fs.Glob(assets, "templates/*.html")
	if err != nil {
		return nil, err
	}
	ps := &pageSet{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		page := strings.TrimPrefix(name, "templates/")
		if page == "layout.html" {
			continue
		}
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(assets, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		ps.pages[page] = tpl
	}

	help, err := assets.ReadFile("content/import_help.md")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert(help, &buf); err != nil {
		return nil, fmt.Errorf("render import help: %w", err)
	}
	ps.importHelp = template.HTML(buf.String())
	return ps, nil
}

// render executes a page with the request's CSRF field bound.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	s.renderStatus(w, r, http.StatusOK, page, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	base, ok := s.pages.pages[page]
	if !ok {
		internalError(w, fmt.Errorf("unknown page %q", page))
		return
	}
	tpl, err := base.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	tpl.Funcs(template.FuncMap{
		"csrfField": func() template.HTML { return csrf.TemplateField(r) },
	})

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", page, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("write_response_failed", "page", page, "error", err)
	}
}
