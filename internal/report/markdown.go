// Package report exports a generated analysis page as a Markdown document.
package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"github.com/newthinker/metricboard/internal/catalog"
	"github.com/newthinker/metricboard/internal/chart"
	"github.com/newthinker/metricboard/internal/dataset"
	"github.com/newthinker/metricboard/internal/pagegen"
)

// Input is everything the report describes.
type Input struct {
	Page       pagegen.Page
	Definition *pagegen.Definition
	Info       catalog.Info
	Summary    []dataset.KPI
	Rows       int
}

// WriteMarkdown writes the report for in to w.
func WriteMarkdown(w io.Writer, in Input) error {
	md := markdown.NewMarkdown(w)

	md.H1(fmt.Sprintf("%s %s", in.Definition.DisplayTitle(), in.Definition.Icon))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Page", "`" + in.Page.ID + "`"},
			{"Category", in.Definition.Category},
			{"Rows", fmt.Sprintf("%d", in.Rows)},
		},
	})
	md.PlainText("")

	md.H2("Key Metrics")
	md.PlainText("")
	if len(in.Summary) == 0 {
		md.PlainText("No metrics available.")
	} else {
		rows := make([][]string, len(in.Summary))
		for i, k := range in.Summary {
			rows[i] = []string{chart.Label(k.Name), FormatValue(k.Value)}
		}
		md.Table(markdown.TableSet{Header: []string{"Metric", "Value"}, Rows: rows})
	}
	md.PlainText("")

	if !in.Info.Empty() {
		md.H2("Available Fields")
		md.PlainText("")
		md.PlainText("**Metrics**")
		md.BulletList(in.Info.Metrics...)
		md.PlainText("")
		md.PlainText("**Dimensions**")
		md.BulletList(in.Info.Dimensions...)
		md.PlainText("")
	} else {
		md.Note("This category is not in the catalog; the overview dataset was used.")
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Exported from metricboard*")

	return md.Build()
}

// FormatValue renders a metric with thousands separators and two decimals.
func FormatValue(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + string(out) + frac
}
