// internal/api/handler/api/categories.go
package api

import (
	"net/http"

	"github.com/newthinker/metricboard/internal/api/response"
	"github.com/newthinker/metricboard/internal/catalog"
)

// CatalogApp defines the interface needed from app.App.
type CatalogApp interface {
	Categories() []string
	CategoryInfo(name string) (catalog.Info, error)
}

// CategoryView is the JSON shape of a catalog category.
type CategoryView struct {
	Name       string   `json:"name"`
	Metrics    []string `json:"metrics"`
	Dimensions []string `json:"dimensions"`
}

// CategoriesHandler handles catalog API requests.
type CategoriesHandler struct {
	app CatalogApp
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(app CatalogApp) *CategoriesHandler {
	return &CategoriesHandler{app: app}
}

// List returns every category with its fields.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.app.Categories()
	views := make([]CategoryView, 0, len(names))
	for _, name := range names {
		info, err := h.app.CategoryInfo(name)
		if err != nil {
			response.Fail(w, err)
			return
		}
		views = append(views, CategoryView{Name: name, Metrics: info.Metrics, Dimensions: info.Dimensions})
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"categories": views,
		"count":      len(views),
	})
}

// Get returns a single category.
func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	info, err := h.app.CategoryInfo(name)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, CategoryView{Name: name, Metrics: info.Metrics, Dimensions: info.Dimensions})
}
