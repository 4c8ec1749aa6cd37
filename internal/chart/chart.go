// Package chart renders dataset views as ECharts snippets that can be
// embedded into the dashboard's HTML templates.
package chart

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/newthinker/metricboard/internal/dataset"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AssetURL is the ECharts runtime the snippets expect on the page.
const AssetURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const defaultHeight = "380px"

// Options tweak how a chart is drawn.
type Options struct {
	// Dark selects the ECharts dark theme.
	Dark bool
	// Height is a CSS height; empty uses 380px.
	Height string
}

// Snippet is a rendered chart ready for html/template.
type Snippet struct {
	Element template.HTML
	Script  template.HTML
}

func (o Options) global(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{Width: "100%", Height: o.Height}
	if initOpts.Height == "" {
		initOpts.Height = defaultHeight
	}
	if o.Dark {
		initOpts.Theme = "dark"
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: title}),
	}
}

func snippet(s render.ChartSnippet) Snippet {
	return Snippet{
		Element: template.HTML(s.Element),
		Script:  template.HTML(s.Script),
	}
}

// Label turns a column name such as "units_sold" into "Units Sold".
func Label(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// Line plots a metric over time.
func Line(title string, dates []time.Time, s dataset.Series, o Options) Snippet {
	x := make([]string, len(dates))
	for i, d := range dates {
		x[i] = d.Format(time.DateOnly)
	}
	data := make([]opts.LineData, len(s.Values))
	for i, v := range s.Values {
		data[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(o.global(title),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.Name}),
	)...)
	line.SetXAxis(x).AddSeries(Label(s.Name), data)
	return snippet(line.RenderSnippet())
}

// ScatterWithTrend plots y against x with an ordinary least squares
// trendline overlaid.
func ScatterWithTrend(title string, x, y dataset.Series, o Options) Snippet {
	n := min(len(x.Values), len(y.Values))
	points := make([]opts.ScatterData, n)
	for i := range n {
		points[i] = opts.ScatterData{Value: []float64{x.Values[i], y.Values[i]}}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(o.global(title),
		charts.WithXAxisOpts(opts.XAxis{Name: x.Name, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: y.Name, Type: "value"}),
	)...)
	scatter.AddSeries(Label(y.Name), points)

	if slope, intercept, ok := dataset.LinearFit(x.Values[:n], y.Values[:n]); ok {
		lo, hi := dataset.Range(x.Values[:n])
		trend := charts.NewLine()
		trend.AddSeries("OLS trendline", []opts.LineData{
			{Value: []float64{lo, slope*lo + intercept}},
			{Value: []float64{hi, slope*hi + intercept}},
		})
		scatter.Overlap(trend)
	}
	return snippet(scatter.RenderSnippet())
}

// Bar plots the mean of a metric per dimension label.
func Bar(title, metric string, groups []dataset.Group, o Options) Snippet {
	labels := make([]string, len(groups))
	data := make([]opts.BarData, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
		data[i] = opts.BarData{Value: g.Mean}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(o.global(title),
		charts.WithYAxisOpts(opts.YAxis{Name: metric}),
	)...)
	bar.SetXAxis(labels).AddSeries(Label(metric), data)
	return snippet(bar.RenderSnippet())
}

// Histogram plots bin counts, labelling each bar with its lower edge.
func Histogram(title, metric string, bins []dataset.Bin, o Options) Snippet {
	labels := make([]string, len(bins))
	data := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = formatEdge(b.Low)
		data[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(o.global(title),
		charts.WithXAxisOpts(opts.XAxis{Name: metric}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)...)
	bar.SetXAxis(labels).AddSeries("count", data)
	return snippet(bar.RenderSnippet())
}

func formatEdge(v float64) string {
	switch {
	case v >= 100 || v <= -100:
		return fmt.Sprintf("%.0f", v)
	case v >= 1 || v <= -1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}
