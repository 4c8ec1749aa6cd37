package web

import (
	"net/http"

	"github.com/newthinker/metricboard/internal/chart"
	"github.com/newthinker/metricboard/internal/dataset"
	"github.com/newthinker/metricboard/internal/pagegen"
)

// VisualizationData holds data for the visualization template
type VisualizationData struct {
	Base
	Trend        chart.Snippet
	Correlation  chart.Snippet
	Distribution chart.Snippet
}

// Visualization renders the overview dataset: sales over time, visitors
// against sales and the sales distribution.
func (h *Handler) Visualization(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	opts := chart.Options{Dark: sess.Settings.Dark()}

	ds := h.dash.Dataset("")
	sales, _ := ds.Metric("sales")
	visitors, _ := ds.Metric("visitors")

	data := VisualizationData{
		Base:         h.base(r, sess, "Data Visualization 📈", "visualization"),
		Trend:        chart.Line("Daily Sales Trend", ds.Dates, sales, opts),
		Correlation:  chart.ScatterWithTrend("Correlation between Visitors and Sales", visitors, sales, opts),
		Distribution: chart.Histogram("Sales Distribution", "sales", dataset.Histogram(sales.Values, pagegen.DefaultHistogramBins), opts),
	}

	h.render(w, "visualization.html", data)
}
