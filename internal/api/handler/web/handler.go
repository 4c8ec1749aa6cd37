// internal/api/handler/web/handler.go
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/newthinker/metricboard/internal/app"
	"github.com/newthinker/metricboard/internal/catalog"
	"github.com/newthinker/metricboard/internal/chart"
	"github.com/newthinker/metricboard/internal/dataset"
	"github.com/newthinker/metricboard/internal/metrics"
	"github.com/newthinker/metricboard/internal/pagegen"
	"github.com/newthinker/metricboard/internal/report"
	"github.com/newthinker/metricboard/internal/session"
	"github.com/newthinker/metricboard/internal/settings"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

// pages lists the page templates; each is parsed together with layout.html.
var pages = []string{"home.html", "analysis.html", "visualization.html", "settings.html", "page.html"}

// Dashboard is what the web UI needs from app.App.
type Dashboard interface {
	Categories() []string
	CategoryInfo(name string) (catalog.Info, error)
	Generate(ctx context.Context, category string) (pagegen.Page, error)
	ListPages(ctx context.Context) ([]pagegen.Page, error)
	DeletePage(ctx context.Context, id string) error
	LoadPage(ctx context.Context, id string) (app.View, error)
	Dataset(category string) *dataset.Dataset
	WriteReport(ctx context.Context, w io.Writer, id string) error
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds separate template instances for each page
	// Each instance contains layout.html + the specific page template
	pageTemplates map[string]*template.Template
	dash          Dashboard
	sessions      *session.Store
	metrics       *metrics.Registry
	logger        *zap.Logger
}

// Base is the data every page hands to layout.html.
type Base struct {
	Title      string
	Active     string
	Generated  []pagegen.Page
	Flashes    []session.Flash
	Settings   settings.Settings
	ChartAsset string
}

var funcs = template.FuncMap{
	"label": chart.Label,
	"value": report.FormatValue,
	"join":  strings.Join,
}

// NewHandler creates a new web handler with templates loaded from the given directory.
// If templatesDir is empty, it falls back to embedded templates.
func NewHandler(templatesDir string, dash Dashboard, sessions *session.Store, logger *zap.Logger) (*Handler, error) {
	if templatesDir != "" {
		return newHandler(func(page string) (*template.Template, error) {
			// Parse layout first, then the page template
			layoutPath := filepath.Join(templatesDir, "layout.html")
			pagePath := filepath.Join(templatesDir, page)
			return template.New("layout.html").Funcs(funcs).ParseFiles(layoutPath, pagePath)
		}, dash, sessions, logger)
	}
	return NewHandlerWithFS(TemplateFS(), dash, sessions, logger)
}

// NewHandlerWithFS creates a new web handler using a custom filesystem.
// This is useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS, dash Dashboard, sessions *session.Store, logger *zap.Logger) (*Handler, error) {
	return newHandler(func(page string) (*template.Template, error) {
		return template.New("layout.html").Funcs(funcs).ParseFS(fsys, "layout.html", page)
	}, dash, sessions, logger)
}

func newHandler(parse func(page string) (*template.Template, error), dash Dashboard, sessions *session.Store, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pageTemplates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := parse(page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	return &Handler{
		pageTemplates: pageTemplates,
		dash:          dash,
		sessions:      sessions,
		logger:        logger,
	}, nil
}

// SetMetrics enables page view counting.
func (h *Handler) SetMetrics(reg *metrics.Registry) {
	h.metrics = reg
}

// base collects the layout data for a request. It consumes the session's
// pending flashes, so call it only when the page is about to render.
func (h *Handler) base(r *http.Request, sess *session.Session, title, active string) Base {
	generated, err := h.dash.ListPages(r.Context())
	if err != nil {
		h.logger.Warn("listing generated pages for navigation", zap.Error(err))
	}

	if h.metrics != nil {
		h.metrics.RecordPageView(active)
		h.metrics.SetSessionsActive(h.sessions.Len())
	}

	return Base{
		Title:      title,
		Active:     active,
		Generated:  generated,
		Flashes:    h.sessions.TakeFlashes(sess.ID),
		Settings:   sess.Settings,
		ChartAsset: chart.AssetURL,
	}
}

// flash queues a message on the session.
func (h *Handler) flash(sess *session.Session, kind, message string) {
	h.sessions.Update(sess.ID, func(s *session.Session) {
		s.AddFlash(kind, message)
	})
}

// render executes the specified page template with the given data
func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	h.renderStatus(w, http.StatusOK, page, data)
}

func (h *Handler) renderStatus(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// This should never happen with valid embed directive
		return templateFS
	}
	return subFS
}
