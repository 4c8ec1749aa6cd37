// internal/api/handler/api/datasets.go
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/newthinker/metricboard/internal/api/response"
	"github.com/newthinker/metricboard/internal/catalog"
	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/dataset"
)

// MaxRows caps the rows a single dataset request may return.
const MaxRows = 366

// DatasetApp defines the interface needed from app.App.
type DatasetApp interface {
	CategoryInfo(name string) (catalog.Info, error)
	Dataset(category string) *dataset.Dataset
}

// DatasetsHandler serves the synthetic category datasets.
type DatasetsHandler struct {
	app DatasetApp
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(app DatasetApp) *DatasetsHandler {
	return &DatasetsHandler{app: app}
}

// DatasetView describes a dataset without its full column data.
type DatasetView struct {
	Category string        `json:"category"`
	RowCount int           `json:"row_count"`
	Columns  []string      `json:"columns"`
	Summary  []dataset.KPI `json:"summary"`
	Rows     []dataset.Row `json:"rows,omitempty"`
}

// Get returns the summary and columns of a category dataset. ?rows=N adds
// up to N rows from the start of the year.
func (h *DatasetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if _, err := h.app.CategoryInfo(category); err != nil {
		response.Fail(w, err)
		return
	}

	rows := 0
	if v := r.URL.Query().Get("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxRows {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrInvalidRequest, fmt.Errorf("rows must be between 0 and %d, got %q", MaxRows, v)))
			return
		}
		rows = n
	}

	ds := h.app.Dataset(category)
	view := DatasetView{
		Category: category,
		RowCount: ds.Len(),
		Columns:  ds.Columns(),
		Summary:  dataset.Summarize(ds),
	}
	if rows > 0 {
		view.Rows = ds.Rows(rows)
	}

	response.JSON(w, http.StatusOK, view)
}
