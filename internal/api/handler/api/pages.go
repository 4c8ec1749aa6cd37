// internal/api/handler/api/pages.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/newthinker/metricboard/internal/api/response"
	"github.com/newthinker/metricboard/internal/app"
	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/pagegen"
)

// PagesApp defines the interface needed from app.App.
type PagesApp interface {
	Generate(ctx context.Context, category string) (pagegen.Page, error)
	ListPages(ctx context.Context) ([]pagegen.Page, error)
	LoadPage(ctx context.Context, id string) (app.View, error)
	DeletePage(ctx context.Context, id string) error
}

// PagesHandler handles generated page API requests.
type PagesHandler struct {
	app PagesApp
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(app PagesApp) *PagesHandler {
	return &PagesHandler{app: app}
}

// GenerateRequest is the request body for generating a page.
type GenerateRequest struct {
	Category string `json:"category"`
}

// List returns all generated pages.
func (h *PagesHandler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.app.ListPages(r.Context())
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"pages": pages,
		"count": len(pages),
	})
}

// Create generates a page for the requested category.
func (h *PagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidRequest, errors.New("category is required")))
		return
	}

	page, err := h.app.Generate(r.Context(), req.Category)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, page)
}

// Get returns a page and its definition.
func (h *PagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.LoadPage(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"page":       view.Page,
		"definition": view.Definition,
	})
}

// Delete removes a page.
func (h *PagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.app.DeletePage(r.Context(), id); err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"deleted": true,
	})
}
