package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/newthinker/metricboard/internal/api/response"
	"github.com/newthinker/metricboard/internal/catalog"
	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/pagegen"
	"github.com/newthinker/metricboard/internal/session"
	"go.uber.org/zap"
)

// PageRow is a generated page in the manage list.
type PageRow struct {
	pagegen.Page
	Confirming bool
}

// AnalysisData holds data for the analysis hub template
type AnalysisData struct {
	Base
	Categories []string
	Selected   string
	Info       catalog.Info
	Pages      []PageRow
}

// Analysis renders the analysis hub: category picker, generate form and the
// list of generated pages.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)

	categories := h.dash.Categories()
	selected := r.URL.Query().Get("category")
	info, err := h.dash.CategoryInfo(selected)
	if err != nil && len(categories) > 0 {
		if selected != "" {
			h.flash(sess, session.FlashError, fmt.Sprintf("Unknown category %q.", selected))
		}
		selected = categories[0]
		info, _ = h.dash.CategoryInfo(selected)
	}

	data := AnalysisData{
		Base:       h.base(r, sess, "Data Analysis Hub 📊", "analysis"),
		Categories: categories,
		Selected:   selected,
		Info:       info,
	}
	for _, p := range data.Generated {
		data.Pages = append(data.Pages, PageRow{Page: p, Confirming: sess.Confirming(p.ID)})
	}

	h.render(w, "analysis.html", data)
}

// Generate creates a page for the submitted category. Storage failures are
// not turned into flashes; they surface as a server error.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	category := r.FormValue("category")

	page, err := h.dash.Generate(r.Context(), category)
	if err != nil {
		if errors.Is(err, core.ErrCategoryNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("generating page", zap.String("category", category), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.flash(sess, session.FlashSuccess,
		fmt.Sprintf("Analysis page generated successfully! Navigate to %s in the sidebar.", page.File))
	redirectToAnalysis(w, r, category)
}

// AskDelete switches a page's delete button to confirm/cancel.
func (h *Handler) AskDelete(w http.ResponseWriter, r *http.Request) {
	h.setConfirming(w, r, true)
}

// CancelDelete clears a pending delete confirmation.
func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	h.setConfirming(w, r, false)
}

// ConfirmDelete removes the page. Failures are reported to the user as a
// flash and the confirmation stays pending.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	id := r.PathValue("id")

	if err := h.dash.DeletePage(r.Context(), id); err != nil {
		h.flash(sess, session.FlashError, "Error deleting page: "+err.Error())
		redirectToAnalysis(w, r, r.FormValue("category"))
		return
	}

	h.sessions.Update(sess.ID, func(s *session.Session) {
		delete(s.Confirmations, id)
		s.AddFlash(session.FlashSuccess, "Deleted "+id)
	})
	redirectToAnalysis(w, r, r.FormValue("category"))
}

func (h *Handler) setConfirming(w http.ResponseWriter, r *http.Request, on bool) {
	sess := h.sessions.Load(w, r)
	id := r.PathValue("id")

	h.sessions.Update(sess.ID, func(s *session.Session) {
		if on {
			s.Confirmations[id] = true
		} else {
			delete(s.Confirmations, id)
		}
	})
	redirectToAnalysis(w, r, r.FormValue("category"))
}

func redirectToAnalysis(w http.ResponseWriter, r *http.Request, category string) {
	target := "/analysis"
	if category != "" {
		target += "?" + url.Values{"category": {category}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// pageError maps a page lookup failure onto a plain HTTP error.
func pageError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), response.StatusFor(err))
}
