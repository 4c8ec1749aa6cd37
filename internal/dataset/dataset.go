// Package dataset produces the synthetic daily business data shown on the
// dashboard, along with the summaries and aggregations its charts need.
package dataset

import (
	"time"
)

// Series is a named numeric column.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Labels is a named categorical column.
type Labels struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Dataset is a table of daily rows split into numeric and categorical columns.
type Dataset struct {
	Category   string      `json:"category"`
	Dates      []time.Time `json:"dates"`
	Metrics    []Series    `json:"metrics"`
	Dimensions []Labels    `json:"dimensions"`
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Dates)
}

// Metric returns the numeric column called name.
func (d *Dataset) Metric(name string) (Series, bool) {
	for _, s := range d.Metrics {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Dimension returns the categorical column called name.
func (d *Dataset) Dimension(name string) (Labels, bool) {
	for _, l := range d.Dimensions {
		if l.Name == name {
			return l, true
		}
	}
	return Labels{}, false
}

// MetricNames lists numeric columns in generation order.
func (d *Dataset) MetricNames() []string {
	names := make([]string, len(d.Metrics))
	for i, s := range d.Metrics {
		names[i] = s.Name
	}
	return names
}

// DimensionNames lists categorical columns in generation order.
func (d *Dataset) DimensionNames() []string {
	names := make([]string, len(d.Dimensions))
	for i, l := range d.Dimensions {
		names[i] = l.Name
	}
	return names
}

// Columns returns every column name, date first.
func (d *Dataset) Columns() []string {
	cols := []string{"date"}
	cols = append(cols, d.MetricNames()...)
	return append(cols, d.DimensionNames()...)
}

// Row is one record of the dataset.
type Row struct {
	Date       time.Time          `json:"date"`
	Metrics    map[string]float64 `json:"metrics"`
	Dimensions map[string]string  `json:"dimensions"`
}

// Rows returns up to limit rows from the top of the table. A limit of zero or
// less returns every row.
func (d *Dataset) Rows(limit int) []Row {
	n := d.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	rows := make([]Row, n)
	for i := range n {
		row := Row{
			Date:       d.Dates[i],
			Metrics:    make(map[string]float64, len(d.Metrics)),
			Dimensions: make(map[string]string, len(d.Dimensions)),
		}
		for _, s := range d.Metrics {
			row.Metrics[s.Name] = s.Values[i]
		}
		for _, l := range d.Dimensions {
			row.Dimensions[l.Name] = l.Values[i]
		}
		rows[i] = row
	}
	return rows
}
