package web

import (
	"bytes"
	"net/http"
	"slices"
	"strconv"

	"github.com/newthinker/metricboard/internal/chart"
	"github.com/newthinker/metricboard/internal/dataset"
	"github.com/newthinker/metricboard/internal/pagegen"
)

// PageData holds data for a rendered analysis page
type PageData struct {
	Base
	Page       pagegen.Page
	Definition *pagegen.Definition

	KPIs       []dataset.KPI
	Metrics    []string
	Dimensions []string
	Metric     string
	Dimension  string

	TimeSeries   chart.Snippet
	Dimensional  chart.Snippet
	Distribution chart.Snippet

	ShowRaw bool
	Columns []string
	Rows    [][]string
}

// Page renders a generated analysis page from its definition.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	id := r.PathValue("id")

	view, err := h.dash.LoadPage(r.Context(), id)
	if err != nil {
		pageError(w, err)
		return
	}

	def := view.Definition
	ds := h.dash.Dataset(def.Category)
	opts := chart.Options{Dark: sess.Settings.Dark()}
	q := r.URL.Query()

	data := PageData{
		Base:       h.base(r, sess, def.DisplayTitle()+" "+def.Icon, view.Page.ID),
		Page:       view.Page,
		Definition: def,
		KPIs:       dataset.Summarize(ds),
		Metrics:    ds.MetricNames(),
		Dimensions: ds.DimensionNames(),
		Metric:     pick(q.Get("metric"), ds.MetricNames()),
		Dimension:  pick(q.Get("dimension"), ds.DimensionNames()),
		ShowRaw:    q.Get("raw") == "1",
	}

	series, _ := ds.Metric(data.Metric)
	if def.Has(pagegen.SectionTimeSeries) {
		data.TimeSeries = chart.Line(chart.Label(data.Metric)+" Over Time", ds.Dates, series, opts)
	}
	if def.Has(pagegen.SectionDimensional) && data.Dimension != "" {
		groups, _ := ds.GroupMean(data.Metric, data.Dimension)
		data.Dimensional = chart.Bar(chart.Label(data.Metric)+" by "+chart.Label(data.Dimension), data.Metric, groups, opts)
	}
	if def.Has(pagegen.SectionDistribution) {
		data.Distribution = chart.Histogram(chart.Label(data.Metric)+" Distribution", data.Metric,
			dataset.Histogram(series.Values, def.HistogramBins), opts)
	}
	if def.Has(pagegen.SectionRawData) && data.ShowRaw {
		data.Columns = ds.Columns()
		data.Rows = rawRows(ds)
	}

	h.render(w, "page.html", data)
}

// Report serves the page's Markdown export.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var buf bytes.Buffer
	if err := h.dash.WriteReport(r.Context(), &buf, id); err != nil {
		pageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="report.md"`)
	w.Write(buf.Bytes())
}

// pick returns want when it is one of options, otherwise the first option.
func pick(want string, options []string) string {
	if slices.Contains(options, want) {
		return want
	}
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

func rawRows(ds *dataset.Dataset) [][]string {
	rows := ds.Rows(0)
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, 0, 1+len(ds.Metrics)+len(ds.Dimensions))
		cells = append(cells, row.Date.Format("2006-01-02"))
		for _, name := range ds.MetricNames() {
			cells = append(cells, strconv.FormatFloat(row.Metrics[name], 'f', 2, 64))
		}
		for _, name := range ds.DimensionNames() {
			cells = append(cells, row.Dimensions[name])
		}
		out[i] = cells
	}
	return out
}
