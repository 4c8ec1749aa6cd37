package dataset

import "github.com/newthinker/metricboard/internal/catalog"

// KPI is a single headline number.
type KPI struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type aggregate int

const (
	aggSum aggregate = iota
	aggMean
)

type kpiSpec struct {
	name   string
	column string
	agg    aggregate
}

var summaries = map[string][]kpiSpec{
	catalog.Sales: {
		{"total_revenue", "revenue", aggSum},
		{"total_units", "units_sold", aggSum},
		{"avg_order_value", "average_order_value", aggMean},
	},
	catalog.Marketing: {
		{"total_clicks", "clicks", aggSum},
		{"total_impressions", "impressions", aggSum},
		{"avg_conversion", "conversion_rate", aggMean},
	},
	catalog.Customer: {
		{"avg_lifetime_value", "lifetime_value", aggMean},
		{"avg_churn_rate", "churn_rate", aggMean},
		{"avg_satisfaction", "satisfaction_score", aggMean},
	},
}

var overviewSummary = []kpiSpec{
	{"total_sales", "sales", aggSum},
	{"avg_daily_visitors", "visitors", aggMean},
	{"avg_conversion_rate", "conversion_rate", aggMean},
}

// Summarize computes the key metrics for the dataset's category. Columns the
// dataset lacks are skipped.
func Summarize(ds *Dataset) []KPI {
	specs, ok := summaries[ds.Category]
	if !ok {
		specs = overviewSummary
	}

	kpis := make([]KPI, 0, len(specs))
	for _, s := range specs {
		col, ok := ds.Metric(s.column)
		if !ok {
			continue
		}
		v := Sum(col.Values)
		if s.agg == aggMean {
			v = Mean(col.Values)
		}
		kpis = append(kpis, KPI{Name: s.name, Value: v})
	}
	return kpis
}
